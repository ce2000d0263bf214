package models

// Project is one entry of the projects-master registry. Records are loaded
// once at startup and never mutated by the pipeline.
type Project struct {
	Code          string  `json:"project_code" yaml:"project_code"`
	NameTH        string  `json:"project_name_th" yaml:"project_name_th"`
	FiscalYear    int     `json:"fiscal_year" yaml:"fiscal_year"`
	ProgramCode   string  `json:"program_code" yaml:"program_code"`
	ProgramNameTH string  `json:"program_name_th" yaml:"program_name_th"`
	FundSource    string  `json:"fund_source_code" yaml:"fund_source_code"` // NIEMS, EMF, RSTI
	OwnerUnit     string  `json:"owner_org_unit" yaml:"owner_org_unit"`
	Section15Main *string `json:"section15_main" yaml:"section15_main"`
}
