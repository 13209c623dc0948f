package models

// ImportableDataset is a dataset archive waiting in the input directory.
type ImportableDataset struct {
	DatasetName string `json:"datasetName"`
	HasMetadata bool   `json:"hasMetadata"`
	HasData     bool   `json:"hasData"`
	IsArchived  bool   `json:"isArchived"`
}
