package agent

import (
	"github.com/xaenox/pathway-assist/internal/models"
	"github.com/xaenox/pathway-assist/internal/security"
)

// Voice-call confidence floor: below this the AI hands the call to a human
// rather than risk answering badly on a live call.
const minVoiceConfidence = 0.5

// DecideCallAction turns a scanned voice transcript and its intent into a
// call-handling decision. The transport executes the action; this only
// decides it.
func DecideCallAction(scan models.ScanResult, intent models.Intent) models.AgentDecision {
	// Crisis calls go straight to a human, never to the AI.
	if scan.HasFlag(security.FlagCriticalCrisis) {
		return models.AgentDecision{
			Action:     models.ActionTransferHuman,
			Response:   scan.SafeContent,
			Reason:     "crisis language detected on call",
			Confidence: 1.0,
			TransferTo: models.TransferCrisisLine,
			FollowUp:   &models.FollowUp{ScheduleCallback: true, Priority: "urgent"},
		}
	}

	// Any other block ends the call with the canned safe response.
	if !scan.Allowed {
		return models.AgentDecision{
			Action:     models.ActionEndCall,
			Response:   scan.SafeContent,
			Reason:     "call blocked: " + scan.Reason,
			Confidence: 1.0,
		}
	}

	// Distressed callers get a human with student-care follow-up.
	if scan.HasFlag(security.FlagEmotionalDistress) {
		return models.AgentDecision{
			Action:     models.ActionTransferHuman,
			Reason:     "caller in emotional distress",
			Confidence: 0.9,
			TransferTo: models.TransferStudentCare,
			FollowUp:   &models.FollowUp{SendEmail: true, Priority: "high"},
		}
	}

	if intent.Type == models.IntentBooking {
		return models.AgentDecision{
			Action:     models.ActionScheduleCallback,
			Reason:     "caller wants to arrange a consultation",
			Confidence: intent.Confidence,
			TransferTo: models.TransferAdmissions,
			FollowUp:   &models.FollowUp{ScheduleCallback: true, SendEmail: true, Priority: "normal"},
		}
	}

	if intent.Confidence < minVoiceConfidence || intent.ClarificationNeeded {
		return models.AgentDecision{
			Action:     models.ActionTransferHuman,
			Reason:     "low confidence in caller intent",
			Confidence: intent.Confidence,
			TransferTo: models.TransferAdmissions,
		}
	}

	return models.AgentDecision{
		Action:     models.ActionAnswerAI,
		Reason:     "intent understood, AI can answer",
		Confidence: intent.Confidence,
	}
}
