package doctor

// Status grades a check.
type Status string

const (
	StatusOK   Status = "ok"
	StatusWarn Status = "warn"
	StatusFail Status = "fail"
)

// Check is the outcome of one diagnostic.
type Check struct {
	Name      string
	Status    Status
	Detail    string
	FixAction string // what Fix would do, empty if nothing
}

// fix actions
const (
	fixInitConfig = "init_config"
)
