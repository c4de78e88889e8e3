package InputParameters

import (
	"fmt"

	"github.com/ghodss/yaml"
)

// Parameters obtained from the YAML input file
type CrackParameters struct {
	Title       string   `yaml:"Title"`
	MeshFile    string   `yaml:"MeshFile"`
	OutputFile  string   `yaml:"OutputFile"`
	CrackGroups []string `yaml:"CrackGroups"` // Applied in order
	DupSuffix   string   `yaml:"DupSuffix"`
	Workers     int      `yaml:"Workers"`
	ReportFile  string   `yaml:"ReportFile"`
	LedgerFile  string   `yaml:"LedgerFile"`
	Verbose     bool     `yaml:"Verbose"`
}

func (ip *CrackParameters) Parse(data []byte) error {
	if err := yaml.Unmarshal(data, ip); err != nil {
		return err
	}
	if len(ip.CrackGroups) == 0 {
		return fmt.Errorf("input deck names no CrackGroups")
	}
	return nil
}

func (ip *CrackParameters) Print() {
	fmt.Printf("\"%s\"\t\t= Title\n", ip.Title)
	fmt.Printf("[%s]\t\t= Mesh File\n", ip.MeshFile)
	fmt.Printf("[%s]\t\t= Output File\n", ip.OutputFile)
	fmt.Printf("%v\t\t= Crack Groups\n", ip.CrackGroups)
	fmt.Printf("[%s]\t\t\t= Duplicate Suffix\n", ip.DupSuffix)
	fmt.Printf("[%d]\t\t\t\t= Workers\n", ip.Workers)
	if ip.ReportFile != "" {
		fmt.Printf("[%s]\t\t= Report File\n", ip.ReportFile)
	}
	if ip.LedgerFile != "" {
		fmt.Printf("[%s]\t\t= Ledger File\n", ip.LedgerFile)
	}
}
