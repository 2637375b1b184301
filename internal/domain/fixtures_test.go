package domain

import (
	m "meowcode.dev/pkg/meowcode/internal/model"
)

var widgetSource = []string{
	"using System;",
	"",
	"public class Widget : IAutoDisposable",
	"{",
	"\tprivate NativeArray<int> handle;",
	"\tprivate ComputeBuffer buffer;",
	"\tpublic Widget(int size)",
	"\t{",
	"\t\thandle = new NativeArray<int>(size, Allocator.Persistent);",
	"\t}",
	"\tpublic void Dispose()",
	"\t{",
	"\t}",
	"}",
}

var widgetGenerated = []string{
	"using System;",
	"",
	"public class Widget : IAutoDisposable",
	"{",
	"\tprivate NativeArray<int> handle;",
	"\tprivate ComputeBuffer buffer;",
	"\tpublic Widget(int size)",
	"\t{",
	BeginMarker,
	"\t\t_meowDisposed_handle = false;",
	"\t\t_meowDisposed_buffer = false;",
	EndMarker,
	"\t\thandle = new NativeArray<int>(size, Allocator.Persistent);",
	"\t}",
	"\tpublic void Dispose()",
	"\t{",
	BeginMarker,
	"\t\tDispose(true);",
	"\t\tGC.SuppressFinalize(this);",
	EndMarker,
	"\t}",
	BeginMarker,
	"\tprivate bool _meowDisposed_handle;",
	"\tprivate bool _meowDisposed_buffer;",
	"\tprotected virtual void Dispose(bool disposing)",
	"\t{",
	"\t\tif (!_meowDisposed_handle)",
	"\t\t{",
	"\t\t\thandle.Dispose();",
	"\t\t\t_meowDisposed_handle = true;",
	"\t\t}",
	"\t\tif (!_meowDisposed_buffer)",
	"\t\t{",
	"\t\t\tbuffer.Dispose();",
	"\t\t\t_meowDisposed_buffer = true;",
	"\t\t}",
	"\t}",
	"",
	"\t~Widget() => Dispose(false);",
	EndMarker,
	"}",
}

func widgetRegistry() m.Registry {
	return m.NewRegistry(m.TypeEntry{Name: "Widget", Fields: []string{"handle", "buffer"}})
}

func scanLines(lines []string, registry m.Registry) (m.ScanResult, error) {
	return Scan(Tokenize(lines), registry)
}
