package repl_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"replsession.dev/repl"
)

func TestRequire_BareSymbolCanonicalized(t *testing.T) {
	be := newFakeBackend()
	sess := newTestSession(be)

	ok, _ := evalOnce(t, sess, "(require 'foo.bar)")

	assert.True(t, ok)
	require.Len(t, be.forms, 1)
	assert.Equal(t, "(ns user (:require [foo.bar]))", be.forms[0].String())
}

func TestRequire_VectorSpecPassesThrough(t *testing.T) {
	be := newFakeBackend()
	sess := newTestSession(be)

	ok, _ := evalOnce(t, sess, "(require '[foo.bar :as fb])")

	assert.True(t, ok)
	assert.Equal(t, "(ns user (:require [foo.bar :as fb]))", be.lastForm().String())
}

func TestRequire_HeaderMetadata(t *testing.T) {
	be := newFakeBackend()
	sess := newTestSession(be)

	ok, _ := evalOnce(t, sess, "(require 'foo.bar)")
	require.True(t, ok)

	form := be.lastForm().(*repl.List)
	require.NotNil(t, form.Meta)
	assert.True(t, form.Meta.Merge)
	assert.Equal(t, 1, form.Meta.Line)
	assert.Equal(t, 1, form.Meta.Column)
}

func TestRequire_ReloadEvictsNamedSpecs(t *testing.T) {
	be := newFakeBackend()
	be.loaded["x"] = true
	be.loaded["y"] = true
	sess := newTestSession(be)

	ok, _ := evalOnce(t, sess, "(require 'x :reload)")

	assert.True(t, ok)
	assert.Equal(t, []repl.Symbol{"x"}, be.evicted)
	assert.False(t, be.clearedAll)
	// The reload keyword is stripped from the emitted form.
	assert.Equal(t, "(ns user (:require [x]))", be.lastForm().String())
}

func TestRequire_ReloadAllClearsCache(t *testing.T) {
	be := newFakeBackend()
	be.loaded["x"] = true
	be.loaded["y"] = true
	sess := newTestSession(be)

	ok, _ := evalOnce(t, sess, "(require 'x :reload-all)")

	assert.True(t, ok)
	assert.True(t, be.clearedAll)
	assert.Empty(t, be.LoadedModules())
	assert.Equal(t, "(ns user (:require [x]))", be.lastForm().String())
}

func TestRequire_OtherKeywordsPassThrough(t *testing.T) {
	be := newFakeBackend()
	sess := newTestSession(be)

	ok, _ := evalOnce(t, sess, "(require 'x :verbose)")

	assert.True(t, ok)
	assert.Equal(t, "(ns user (:require [x] :verbose))", be.lastForm().String())
}

func TestRequire_SelfRequireRoutesThroughScratch(t *testing.T) {
	be := newFakeBackend()
	sess := newTestSession(be, repl.WithStartNamespace("foo.bar"))

	ok, _ := evalOnce(t, sess, "(require 'foo.bar)")

	assert.True(t, ok)
	assert.Equal(t, "(ns repl.scratch (:require [foo.bar]))", be.lastForm().String())
	assert.Equal(t, repl.Symbol("foo.bar"), sess.Namespace(), "original namespace restored on success")
}

func TestRequire_SelfRequireInVectorSpec(t *testing.T) {
	be := newFakeBackend()
	sess := newTestSession(be, repl.WithStartNamespace("foo.bar"))

	ok, _ := evalOnce(t, sess, "(require '[foo.bar :as self])")

	assert.True(t, ok)
	assert.Equal(t, "(ns repl.scratch (:require [foo.bar :as self]))", be.lastForm().String())
	assert.Equal(t, repl.Symbol("foo.bar"), sess.Namespace())
}

func TestRequire_NoSelfReferenceKeepsTarget(t *testing.T) {
	be := newFakeBackend()
	sess := newTestSession(be, repl.WithStartNamespace("foo.bar"))

	ok, _ := evalOnce(t, sess, "(require 'other.ns)")

	assert.True(t, ok)
	assert.Equal(t, "(ns foo.bar (:require [other.ns]))", be.lastForm().String())
}

func TestImport_SpecsPassThroughUnchanged(t *testing.T) {
	be := newFakeBackend()
	sess := newTestSession(be)

	ok, _ := evalOnce(t, sess, "(import '(goog.string StringBuffer))")

	assert.True(t, ok)
	assert.Equal(t, "(ns user (:import (goog.string StringBuffer)))", be.lastForm().String())
}

func TestImport_NoSelfReferenceHandling(t *testing.T) {
	be := newFakeBackend()
	sess := newTestSession(be, repl.WithStartNamespace("foo.bar"))

	ok, _ := evalOnce(t, sess, "(import 'foo.bar)")

	assert.True(t, ok)
	// Imports never reroute through the scratch namespace.
	assert.Equal(t, "(ns foo.bar (:import foo.bar))", be.lastForm().String())
}
