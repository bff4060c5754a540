package domain

import "time"

// ActivityVerb classifies what a mutation did to its subject.
type ActivityVerb string

const (
	VerbCreated   ActivityVerb = "created"
	VerbUpdated   ActivityVerb = "updated"
	VerbDestroyed ActivityVerb = "destroyed"
	VerbActioned  ActivityVerb = "actioned"
)

// ActivityEvent records one successful dashboard mutation for the activity
// feed. Events are write-once.
type ActivityEvent struct {
	ID         string       `json:"id" bson:"_id,omitempty"`
	ActorID    string       `json:"actor_id" bson:"actor_id"`
	ActorEmail string       `json:"actor_email" bson:"actor_email"`
	Resource   Resource     `json:"resource" bson:"resource"`
	Verb       ActivityVerb `json:"verb" bson:"verb"`
	Action     string       `json:"action,omitempty" bson:"action,omitempty"`
	SubjectID  string       `json:"subject_id,omitempty" bson:"subject_id,omitempty"`
	OccurredAt time.Time    `json:"occurred_at" bson:"occurred_at"`
}
