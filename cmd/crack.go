/*
Copyright © 2020 NAME HERE <EMAIL ADDRESS>

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/
package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/notargets/gocrack/InputParameters"
	"github.com/notargets/gocrack/crack"
	"github.com/notargets/gocrack/ledger"
	"github.com/notargets/gocrack/mesh"
	"github.com/notargets/gocrack/readfiles"
	"github.com/notargets/gocrack/report"
)

type CrackRun struct {
	MeshFile   string
	InputFile  string
	OutputFile string
	Groups     []string
	ReportFile string
	LedgerFile string
	Plot       bool
	Verbose    bool
}

// CrackCmd represents the crack command
var CrackCmd = &cobra.Command{
	Use:   "crack",
	Short: "Open one or more cracks in a mesh and write the result",
	Long: `
Reads an SU2 mesh, opens the cracks named by facet groups (markers) in order
and writes the cracked mesh. Each crack adds the group <name>_dup holding the
facets of its second lip.

gocrack crack -F mesh.su2 -I deck.yaml
gocrack crack -F mesh.su2 -g crack -o cracked.su2`,
	Run: func(cmd *cobra.Command, args []string) {
		cr := &CrackRun{}
		cr.MeshFile, _ = cmd.Flags().GetString("meshFile")
		cr.InputFile, _ = cmd.Flags().GetString("inputFile")
		cr.OutputFile, _ = cmd.Flags().GetString("outputFile")
		cr.Groups, _ = cmd.Flags().GetStringSlice("group")
		cr.ReportFile, _ = cmd.Flags().GetString("report")
		cr.LedgerFile, _ = cmd.Flags().GetString("ledger")
		cr.Plot, _ = cmd.Flags().GetBool("plot")
		cr.Verbose, _ = cmd.Flags().GetBool("verbose")
		m, _, err := RunCrack(cmd.Context(), cr)
		if err != nil {
			fmt.Printf("error: %s\n", err.Error())
			os.Exit(1)
		}
		if cr.Plot {
			if _, err = readfiles.PlotMesh(m, m.GroupNames()...); err != nil {
				fmt.Printf("error: %s\n", err.Error())
				os.Exit(1)
			}
			select {}
		}
	},
}

func init() {
	rootCmd.AddCommand(CrackCmd)
	CrackCmd.Flags().StringP("meshFile", "F", "", "Mesh file to read in SU2 (.su2) format")
	CrackCmd.Flags().StringP("inputFile", "I", "", "YAML input deck naming the mesh, the crack groups and the outputs")
	CrackCmd.Flags().StringP("outputFile", "o", "", "SU2 file to write the cracked mesh to")
	CrackCmd.Flags().StringSliceP("group", "g", nil, "crack group to open, repeat for several, applied in order")
	CrackCmd.Flags().String("report", "", "write a canonical JSON report of the cracks")
	CrackCmd.Flags().String("ledger", "", "SQLite ledger recording every opened crack")
	CrackCmd.Flags().BoolP("plot", "p", false, "display the cracked mesh (2D only)")
	CrackCmd.Flags().BoolP("verbose", "v", false, "report the progress of each crack")
	CrackCmd.Flags().IntP("workers", "w", 1, "parallel degree of the crack analysis")
	CrackCmd.Flags().String("dupSuffix", crack.DefaultDupSuffix, "suffix naming the group of duplicated facets")
	viper.BindPFlag("workers", CrackCmd.Flags().Lookup("workers"))
	viper.BindPFlag("dupSuffix", CrackCmd.Flags().Lookup("dupSuffix"))
}

// processInput merges the input deck with the command line, the command line wins
func processInput(cr *CrackRun) (ip *InputParameters.CrackParameters, err error) {
	ip = &InputParameters.CrackParameters{
		MeshFile:    cr.MeshFile,
		OutputFile:  cr.OutputFile,
		CrackGroups: cr.Groups,
		ReportFile:  cr.ReportFile,
		LedgerFile:  cr.LedgerFile,
		Verbose:     cr.Verbose,
	}
	if len(cr.InputFile) != 0 {
		var data []byte
		if data, err = os.ReadFile(cr.InputFile); err != nil {
			return nil, err
		}
		deck := &InputParameters.CrackParameters{}
		if err = deck.Parse(data); err != nil {
			return nil, fmt.Errorf("input deck %s: %w", cr.InputFile, err)
		}
		override(&deck.MeshFile, ip.MeshFile)
		override(&deck.OutputFile, ip.OutputFile)
		override(&deck.ReportFile, ip.ReportFile)
		override(&deck.LedgerFile, ip.LedgerFile)
		if len(ip.CrackGroups) != 0 {
			deck.CrackGroups = ip.CrackGroups
		}
		deck.Verbose = deck.Verbose || ip.Verbose
		ip = deck
	}
	if ip.DupSuffix == "" {
		ip.DupSuffix = viper.GetString("dupSuffix")
	}
	if ip.Workers == 0 {
		ip.Workers = viper.GetInt("workers")
	}
	if len(ip.MeshFile) == 0 {
		return nil, fmt.Errorf("must supply a mesh file (-F, --meshFile) in SU2 (.su2) format")
	}
	if len(ip.CrackGroups) == 0 {
		return nil, fmt.Errorf("must name at least one crack group (-g, --group) or an input deck (-I, --inputFile) like:%s",
			exampleDeck)
	}
	return
}

func override(dst *string, src string) {
	if src != "" {
		*dst = src
	}
}

var exampleDeck = `
########################################
Title: "Plate with a crack"
MeshFile: plate.su2
OutputFile: plate-cracked.su2
CrackGroups: [crack]
DupSuffix: _dup
Workers: 1
ReportFile: report.json
LedgerFile: runs.db
########################################
`

// RunCrack opens the cracks described by cr and writes every requested output
func RunCrack(ctx context.Context, cr *CrackRun) (m *mesh.Mesh, results []*crack.Result, err error) {
	var ip *InputParameters.CrackParameters
	if ip, err = processInput(cr); err != nil {
		return
	}
	if ip.Verbose {
		ip.Print()
	}
	if m, err = readfiles.ReadSU2(ip.MeshFile, ip.Verbose); err != nil {
		return
	}
	opts := &crack.Options{
		DupSuffix: ip.DupSuffix,
		Workers:   ip.Workers,
		Verbose:   ip.Verbose,
	}
	if results, err = crack.ApplyGroups(m, ip.CrackGroups, opts); err != nil {
		return
	}
	for _, res := range results {
		fmt.Printf("crack %s: %d nodes duplicated, %d cells rewritten, %d facets added to %s\n",
			res.Group, len(res.Duplicates), len(res.CellsModified), len(res.DuplicatedFacets), res.DupGroup)
	}

	if len(ip.OutputFile) != 0 {
		if err = readfiles.WriteSU2File(ip.OutputFile, m); err != nil {
			return
		}
		fmt.Printf("Wrote cracked mesh to %s\n", ip.OutputFile)
	}

	rpt := report.New(ip.MeshFile, results)
	var digest string
	if digest, err = rpt.Digest(); err != nil {
		return
	}
	fmt.Printf("Report digest: %s\n", digest)
	if len(ip.ReportFile) != 0 {
		if err = rpt.Write(ip.ReportFile); err != nil {
			return
		}
	}

	if len(ip.LedgerFile) != 0 {
		var store *ledger.Store
		if store, err = ledger.Open(ip.LedgerFile); err != nil {
			return
		}
		defer store.Close()
		if ctx == nil {
			ctx = context.Background()
		}
		for _, res := range results {
			if _, err = store.Record(ctx, ip.MeshFile, res, digest); err != nil {
				return
			}
		}
	}
	return
}
