package models

// Agent names the router can select.
const (
	AgentBooking         = "booking"
	AgentCultural        = "cultural"
	AgentDataAI          = "data_ai"
	AgentCybersecurity   = "cybersecurity"
	AgentFullstack       = "fullstack"
	AgentBusinessAnalyst = "business_analyst"
	AgentLegacy          = "legacy"
)

// CallAction is the voice-call decision for a turn.
type CallAction string

const (
	ActionAnswerAI         CallAction = "answer-ai"
	ActionTransferHuman    CallAction = "transfer-human"
	ActionScheduleCallback CallAction = "schedule-callback"
	ActionEscalate         CallAction = "escalate"
	ActionEndCall          CallAction = "end-call"
)

// TransferTarget identifies which human queue a call should be routed to.
type TransferTarget string

const (
	TransferCrisisLine  TransferTarget = "crisis_line"
	TransferAdmissions  TransferTarget = "admissions"
	TransferStudentCare TransferTarget = "student_care"
)

// FollowUp describes post-call actions attached to a voice decision.
type FollowUp struct {
	ScheduleCallback bool   `json:"schedule_callback"`
	SendEmail        bool   `json:"send_email"`
	Priority         string `json:"priority"`
}

// AgentDecision is the voice-call variant of a routing decision.
type AgentDecision struct {
	Action     CallAction     `json:"action"`
	Response   string         `json:"response,omitempty"`
	Reason     string         `json:"reason"`
	Confidence float64        `json:"confidence"`
	TransferTo TransferTarget `json:"transfer_to,omitempty"`
	FollowUp   *FollowUp      `json:"follow_up,omitempty"`
}
