package dto

import "time"

type Overview struct {
	Date                time.Time `json:"date"`
	ActiveEmployees     int64     `json:"activeEmployees"`
	UpdatesToday        int64     `json:"updatesToday"`
	SubmissionRate      float64   `json:"submissionRate"`
	ScheduledInterviews int64     `json:"scheduledInterviews"`
	ActiveProjects      int64     `json:"activeProjects"`
}
