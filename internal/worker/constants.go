package worker

// ============================================================================
// Log Messages - Worker Pool
// ============================================================================

// LogMsgWorkerJobFailed is logged when a worker fails to process a job
const LogMsgWorkerJobFailed = "Worker job failed"

// ============================================================================
// Log Messages - Scheduled Jobs
// ============================================================================

// Log messages for the recurring stardust jobs
const (
	LogMsgWeeklyJobStarting   = "Weekly points job starting"
	LogMsgWeeklyJobCompleted  = "Weekly points job completed"
	LogMsgTierAdjustSkipped   = "Tier adjustment skipped"
	LogMsgMonthlyJobStarting  = "Monthly report job starting"
	LogMsgMonthlyJobCompleted = "Monthly report job completed"
	LogMsgModLogSyncStarting  = "Mod-log sync job starting"
	LogMsgModLogSyncCompleted = "Mod-log sync job completed"
	LogMsgBackfillStarting    = "Backfill job starting"
	LogMsgBackfillCompleted   = "Backfill job completed"
)

// ============================================================================
// Test Configuration
// ============================================================================

// Test pool configuration values used in pool_test.go
const (
	TestWorkerCount           = 2
	TestQueueSize             = 10
	TestExpectedJobCount      = 2
	TestWorkerProcessWaitTime = 100 // milliseconds
)
