package models

// IndexConfig holds runtime configuration for an index run.
// All values come from CLI flags, not external config files.
type IndexConfig struct {
	Root            string
	ManifestPath    string
	OutDir          string
	KName           int
	KHTML           int
	KAttach         int
	StopwordsPath   string
	RulesPath       string
	OCR             bool
	OnlyAttachments bool
	Emit            EmitSet
	DryRun          bool
	WorkerCount     int
}
