// Package jobs runs background work on a cron schedule (github.com/robfig/cron/v3).
//
// DailyAssignmentJob builds the day schedule of the current date. JobManager
// owns it:
//
//	manager := jobs.NewJobManager(assignHandler, jobs.Config{
//		AssignmentSpec:    "0 0 7 * * *",
//		AssignmentTimeout: time.Minute,
//		Location:          time.UTC,
//	}, time.Now, logger)
//	if err := manager.StartAll(); err != nil {
//		return err
//	}
//	defer manager.StopAll()
//
// Specs take six fields, seconds first, and fire in Config.Location. The same
// zone picks the date to schedule. An empty spec leaves the job off.
//
// A date that is already scheduled, or that has no couriers or orders, is an
// expected outcome and logged at info. Other failures are logged at error and
// the next tick tries again.
package jobs
