package main

import "github.com/fatih/color"

var Success = color.New(color.FgGreen)
var Warning = color.New(color.FgYellow)
var HeaderFmt = color.New(color.FgCyan, color.Underline).SprintfFunc()
var ColumnFmt = color.New(color.FgYellow).SprintfFunc()
