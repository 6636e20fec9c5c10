// Copyright 2023 Charlie Vieth. All rights reserved.
// Use of this source code is governed by the MIT license.

// Package strutil provides small, allocation-free string primitives that
// supplement the Go standard library's [strings] package: null-safe equality
// and ordering, prefix matching, a fixed-width lowercase hex codec, and ASCII
// and UTF-8 validation scanners.
//
// The [bytutil] package provides the same API for byte slices.
//
// [strings]: https://pkg.go.dev/strings
// [bytutil]: https://pkg.go.dev/github.com/charlievieth/strutil/bytutil
package strutil

//go:generate go run gen.go
