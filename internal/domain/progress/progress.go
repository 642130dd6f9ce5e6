// Package progress derives the borrower-facing step list from stored state.
// Nothing here is persisted.
package progress

import "sba-portal/internal/domain/application"

type StepStatus string

const (
	Pending    StepStatus = "pending"
	InProgress StepStatus = "in-progress"
	Completed  StepStatus = "completed"
)

const (
	StepApplicationForms = "Application Forms"
	StepDocumentUpload   = "Document Upload"
	StepInitialReview    = "Initial Review"
	StepUnderwriting     = "Underwriting"
	StepFinalApproval    = "Final Approval"
	StepFunding          = "Funding"
)

type Step struct {
	Name   string     `json:"name"`
	Status StepStatus `json:"status"`
}

type Projection struct {
	Steps   []Step `json:"steps"`
	Percent int    `json:"percent"`
}

type Input struct {
	Status        application.Status
	Stage         string
	DocumentCount int
	Minimum       int
}

func Project(in Input) Projection {
	steps := []Step{
		{StepApplicationForms, forms(in)},
		{StepDocumentUpload, upload(in)},
		{StepInitialReview, review(in.Status)},
		{StepUnderwriting, underwriting(in.Status, in.Stage)},
		{StepFinalApproval, approval(in.Status)},
		{StepFunding, funding(in.Status)},
	}
	done := 0
	for _, s := range steps {
		if s.Status == Completed {
			done++
		}
	}
	return Projection{Steps: steps, Percent: done * 100 / len(steps)}
}

func forms(in Input) StepStatus {
	if in.DocumentCount > 0 || (in.Status != application.StatusStarted && in.Status != "") {
		return Completed
	}
	return Pending
}

func upload(in Input) StepStatus {
	switch {
	case in.DocumentCount == 0:
		return Pending
	case in.DocumentCount < in.Minimum:
		return InProgress
	default:
		return Completed
	}
}

func review(s application.Status) StepStatus {
	switch s {
	case application.StatusUnderReview:
		return InProgress
	case application.StatusApproved, application.StatusFunded:
		return Completed
	default:
		return Pending
	}
}

func underwriting(s application.Status, stage string) StepStatus {
	switch stage {
	case "closing", "funded", "complete":
		return Completed
	case "underwriting":
		if s == application.StatusDeclined {
			return Pending
		}
		return InProgress
	}
	if s == application.StatusApproved || s == application.StatusFunded {
		return Completed
	}
	return Pending
}

func approval(s application.Status) StepStatus {
	if s == application.StatusApproved || s == application.StatusFunded {
		return Completed
	}
	return Pending
}

func funding(s application.Status) StepStatus {
	if s == application.StatusFunded {
		return Completed
	}
	return Pending
}
