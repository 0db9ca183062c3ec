package main

import (
	"github.com/spf13/cobra"

	"refgen/src/cmd/refgen/citecmd"
	"refgen/src/cmd/refgen/exportcmd"
	"refgen/src/cmd/refgen/formatcmd"
	"refgen/src/cmd/refgen/historycmd"
	"refgen/src/cmd/refgen/lookupcmd"
)

// newCiteCmd prints a citation and its in-text form.
func newCiteCmd() *cobra.Command { return citecmd.New() }

// newExportCmd renders a record as BibTeX or RIS.
func newExportCmd() *cobra.Command { return exportcmd.New() }

// newLookupCmd queries the metadata APIs.
func newLookupCmd() *cobra.Command { return lookupcmd.New() }

// newFormatCmd formats every entry of a BibTeX file.
func newFormatCmd() *cobra.Command { return formatcmd.New() }

func newHistoryCmd() *cobra.Command { return historycmd.New() }
