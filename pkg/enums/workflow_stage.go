package enums

// WorkflowStage buckets a bid by how far it has progressed toward award.
type WorkflowStage string

const (
	WorkflowStageNew            WorkflowStage = "new"
	WorkflowStageInterested     WorkflowStage = "interested"
	WorkflowStageRFQSent        WorkflowStage = "rfq_sent"
	WorkflowStageQuotesReceived WorkflowStage = "quotes_received"
	WorkflowStageAwarded        WorkflowStage = "awarded"
)

var orderedWorkflowStages = []WorkflowStage{
	WorkflowStageNew,
	WorkflowStageInterested,
	WorkflowStageRFQSent,
	WorkflowStageQuotesReceived,
	WorkflowStageAwarded,
}

// String implements fmt.Stringer.
func (s WorkflowStage) String() string {
	return string(s)
}

// WorkflowStages returns the stages in pipeline order.
func WorkflowStages() []WorkflowStage {
	out := make([]WorkflowStage, len(orderedWorkflowStages))
	copy(out, orderedWorkflowStages)
	return out
}
