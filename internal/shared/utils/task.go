package utils

import (
	"fmt"

	"github.com/hibiken/asynq"
	jsoniter "github.com/json-iterator/go"
)

var taskJSON = jsoniter.ConfigCompatibleWithStandardLibrary

// NewTask encodes payload and builds an asynq task of the given type.
func NewTask(taskType string, payload interface{}, opts ...asynq.Option) (*asynq.Task, error) {
	data, err := taskJSON.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("marshal %s payload: %w", taskType, err)
	}
	return asynq.NewTask(taskType, data, opts...), nil
}

// UnmarshalTask decodes the task payload into dest. An empty payload leaves
// dest untouched.
func UnmarshalTask(t *asynq.Task, dest interface{}) error {
	if len(t.Payload()) == 0 {
		return nil
	}
	if err := taskJSON.Unmarshal(t.Payload(), dest); err != nil {
		return fmt.Errorf("unmarshal %s payload: %w", t.Type(), err)
	}
	return nil
}
