package handlers

// Exported aliases so external tests can reference unexported constants.
const (
	PhotoFieldName    = photoFieldName
	ExportContentType = exportContentType
)
