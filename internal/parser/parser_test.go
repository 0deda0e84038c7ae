package parser

import (
	"context"
	"strings"
	"testing"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func parse(t *testing.T, filename, src string) *Tree {
	t.Helper()
	p := NewParser()
	t.Cleanup(p.Close)
	tree, err := p.Parse(context.Background(), filename, []byte(src))
	require.NoError(t, err)
	t.Cleanup(tree.Close)
	return tree
}

func parsePython(t *testing.T, src string) *Tree {
	t.Helper()
	return parse(t, "script.py", src)
}

func imports(t *testing.T, filename, src string) []string {
	t.Helper()
	names, err := parse(t, filename, src).Imports()
	require.NoError(t, err)
	return names
}

func TestParseUnknownExtension(t *testing.T) {
	p := NewParser()
	defer p.Close()
	_, err := p.Parse(context.Background(), "file.xyz", []byte(`some content`))
	require.Error(t, err)
	assert.True(t, strings.Contains(err.Error(), "unsupported"),
		"error should contain 'unsupported', got: %s", err.Error())
}

func TestSupports(t *testing.T) {
	for _, name := range []string{"pkg/module.py", "main.go", "lib.rs", "a.js", "b.jsx", "c.mjs", "d.cjs", "e.ts", "f.tsx"} {
		assert.True(t, Supports(name), name)
	}
	assert.False(t, Supports("Makefile"))
	assert.False(t, Supports("README.md"))
}

func TestPythonImports(t *testing.T) {
	tree := parsePython(t, `import os
import sys
from pathlib import Path

def main():
    pass
`)
	imports, err := tree.Imports()
	require.NoError(t, err)
	assert.Equal(t, []string{"os", "sys", "pathlib"}, imports)
}

func TestPythonImportsTopLevelOnly(t *testing.T) {
	tree := parsePython(t, `import os.path
import xml.etree.ElementTree as ET
from requests.adapters import HTTPAdapter
`)
	imports, err := tree.Imports()
	require.NoError(t, err)
	assert.Equal(t, []string{"os", "xml", "requests"}, imports)
}

func TestPythonImportsMultipleNames(t *testing.T) {
	tree := parsePython(t, "import json, re as regex, collections.abc\n")
	imports, err := tree.Imports()
	require.NoError(t, err)
	assert.Equal(t, []string{"json", "re", "collections"}, imports)
}

func TestPythonImportsSkipRelative(t *testing.T) {
	tree := parsePython(t, `from . import sibling
from .utils import helper
from ..pkg.mod import thing
import requests
`)
	imports, err := tree.Imports()
	require.NoError(t, err)
	assert.Equal(t, []string{"requests"}, imports)
}

func TestPythonImportsNested(t *testing.T) {
	tree := parsePython(t, `def load():
    import yaml
    try:
        from lxml import etree
    except ImportError:
        pass
`)
	imports, err := tree.Imports()
	require.NoError(t, err)
	assert.Equal(t, []string{"yaml", "lxml"}, imports)
}

func TestPythonFutureImport(t *testing.T) {
	tree := parsePython(t, "from __future__ import annotations\nimport attr\n")
	imports, err := tree.Imports()
	require.NoError(t, err)
	assert.Equal(t, []string{"__future__", "attr"}, imports)
}

func TestPythonImportsSyntaxError(t *testing.T) {
	tree := parsePython(t, "import os\ndef broken(:\n    pass\n")
	assert.True(t, tree.HasErrors())

	imports, err := tree.Imports()
	assert.ErrorIs(t, err, ErrSyntax)
	assert.Nil(t, imports)
}

func TestPythonNoImports(t *testing.T) {
	tree := parsePython(t, "x = 1\nprint(x)\n")
	imports, err := tree.Imports()
	require.NoError(t, err)
	assert.Empty(t, imports)
}

func TestGoImports(t *testing.T) {
	got := imports(t, "main.go", `package main

// import ("commented/out")
import "fmt"

import (
	stdlog "log"
	_ "github.com/lib/pq"
	. "github.com/onsi/gomega"
	"."
	`+"`gopkg.in/yaml.v3`"+`
)

func main() { reimport("x/y") }
`)
	assert.Equal(t, []string{"fmt", "log", "pq", "gomega", "yaml.v3"}, got)
}

func TestGoPackageName(t *testing.T) {
	assert.Equal(t, "json", GoPackageName("encoding/json"))
	assert.Equal(t, "fmt", GoPackageName(" fmt "))
	assert.Equal(t, "v5", GoPackageName("github.com/go-chi/chi/v5"))
	assert.Empty(t, GoPackageName("."))
	assert.Empty(t, GoPackageName(".."))
	assert.Empty(t, GoPackageName(""))
}

func TestRustImports(t *testing.T) {
	got := imports(t, "lib.rs", `use std::io;
use ::anyhow::Result;
use crate::config::Settings;
use super::super::shared::Thing;
pub(crate) use self::model::{Node, Edge};
use crate::{
    store,
    api::routes, // http
    self,
};
use crate::db as database;
use super::*;

fn main() {
    use crate::inner::helper;
}
`)
	assert.Equal(t, []string{"config", "shared", "model", "store", "api", "db", "inner"}, got)
}

func TestScriptImports(t *testing.T) {
	got := imports(t, "app.js", `import React from 'react';
import { a } from "./local"; import b from '@scope/pkg/sub'
import 'side-effect';
const fs = require('fs');
const x = myrequire('zzz');
register(require("lodash/fp"));
`)
	assert.Equal(t, []string{"react", "@scope", "fs", "lodash"}, got)
}

func TestTypeScriptImports(t *testing.T) {
	got := imports(t, "app.ts", "import type { Config } from '@acme/config';\nimport { z } from 'zod';\nlet n: number = 1;\n")
	assert.Equal(t, []string{"@acme", "zod"}, got)

	got = imports(t, "view.tsx", "import React from 'react';\nexport const V = () => <div />;\n")
	assert.Equal(t, []string{"react"}, got)
}

func TestTopLevel(t *testing.T) {
	assert.Equal(t, "os", topLevel("os.path"))
	assert.Equal(t, "requests", topLevel("requests"))
	assert.Equal(t, "a", topLevel(" a.b.c "))
}

func TestWalkNilNode(t *testing.T) {
	var called bool
	walk(nil, func(_ *sitter.Node) bool {
		called = true
		return true
	})
	assert.False(t, called)
}
