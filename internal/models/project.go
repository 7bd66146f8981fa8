package models

type Project struct {
	ID             string
	Key            string
	HistoricalKeys []string
}

// ProjectHistoricalKeys tells where the legacy attachment tree of a project lives.
// OriginalKey holds the issue attachment buckets, KeysHoldingData holds test step
// and execution folders, in probing order.
type ProjectHistoricalKeys struct {
	CurrentKey      string
	OriginalKey     string
	KeysHoldingData []string
}
