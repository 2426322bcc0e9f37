package scene

const (
	DefaultConfig = "scenes/config.yaml"
	DefaultReport = "report.yaml"
)
