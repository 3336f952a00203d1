package dto

type PluginInfo struct {
	Name         string
	Version      string
	Enabled      bool
	Binary       string
	Capabilities []string
}

type DoctorResult struct {
	Name            string
	ChecksumValid   bool
	BinaryReachable bool
	LifecycleOK     bool
	Error           string
}

type RespondInput struct {
	PluginName string
	UserID     string
	Message    string
}

type RespondOutput struct {
	PluginName string
	Reply      string
	Category   string
	Handled    bool
}
