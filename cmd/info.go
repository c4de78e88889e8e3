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
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/notargets/gocrack/mesh"
	"github.com/notargets/gocrack/readfiles"
)

// InfoCmd represents the info command
var InfoCmd = &cobra.Command{
	Use:   "info",
	Short: "Print mesh statistics and the facet groups a crack can be opened along",
	Long: `
Reads an SU2 mesh and prints its statistics and facet groups. Groups made only
of interior facets can be opened as cracks, groups reaching the skin open
from the boundary.

gocrack info -F mesh.su2`,
	Run: func(cmd *cobra.Command, args []string) {
		meshFile, _ := cmd.Flags().GetString("meshFile")
		plot, _ := cmd.Flags().GetBool("plot")
		if len(meshFile) == 0 {
			fmt.Printf("error: must supply a mesh file (-F, --meshFile) in SU2 (.su2) format\n")
			os.Exit(1)
		}
		m, err := readfiles.ReadSU2(meshFile, false)
		if err != nil {
			fmt.Printf("error: %s\n", err.Error())
			os.Exit(1)
		}
		m.PrintStatistics()
		for _, gi := range GroupSummary(m) {
			fmt.Printf("  %-20s %5d facets, %5d interior, %5d on the skin, %5d cells\n",
				gi.Name, gi.Facets, gi.Interior, gi.Skin, gi.Cells)
		}
		if plot {
			if _, err = readfiles.PlotMesh(m, m.GroupNames()...); err != nil {
				fmt.Printf("error: %s\n", err.Error())
				os.Exit(1)
			}
			select {}
		}
	},
}

func init() {
	rootCmd.AddCommand(InfoCmd)
	InfoCmd.Flags().StringP("meshFile", "F", "", "Mesh file to read in SU2 (.su2) format")
	InfoCmd.Flags().BoolP("plot", "p", false, "display the mesh with its facet groups (2D only)")
}

type GroupInfo struct {
	Name     string
	Facets   int
	Interior int // Facets with two owners
	Skin     int // Facets with a single owner
	Cells    int // Elements sharing at least one node with the group
}

// GroupSummary counts the interior and skin facets of every group and the
// elements a crack along it can reach, in name order
func GroupSummary(m *mesh.Mesh) (infos []GroupInfo) {
	inc := m.NodeToElement()
	for _, name := range m.GroupNames() {
		gi := GroupInfo{Name: name, Facets: len(m.Groups[name])}
		var (
			nodes = make(map[int]bool)
			cells = make(map[int]bool)
		)
		for _, f := range m.Groups[name] {
			switch len(m.Desc.FToE[f]) {
			case 1:
				gi.Skin++
			case 2:
				gi.Interior++
			}
			for _, n := range m.Desc.Facets[f] {
				if nodes[n] {
					continue
				}
				nodes[n] = true
				for _, k := range inc.Elements(n) {
					cells[k] = true
				}
			}
		}
		gi.Cells = len(cells)
		infos = append(infos, gi)
	}
	return
}
