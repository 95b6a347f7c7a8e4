package dto

// DashboardStats aggregates totals across every project the user belongs to
type DashboardStats struct {
	Projects   int   `json:"projects"`
	TestCases  int64 `json:"testCases"`
	Executions int64 `json:"executions"`
	Bugs       int64 `json:"bugs"`
}

// ProjectStats aggregates live counts and derived rates for one project.
// PassRate excludes not_run executions from its denominator; BugDensity
// is open bugs per test case. Both are zero for an empty project.
type ProjectStats struct {
	ProjectID       string  `json:"projectId"`
	Epics           int64   `json:"epics"`
	TestCases       int64   `json:"testCases"`
	ActiveTestCases int64   `json:"activeTestCases"`
	Executions      int64   `json:"executions"`
	PassRate        float64 `json:"passRate"`
	Bugs            int64   `json:"bugs"`
	OpenBugs        int64   `json:"openBugs"`
	CriticalBugs    int64   `json:"criticalBugs"`
	BugDensity      float64 `json:"bugDensity"`
}
