package viewstate

import (
	"encoding/json"
	"errors"
	"fmt"
)

// Status is the tag of a view state
type Status string

const (
	StatusLoading Status = "loading"
	StatusError   Status = "error"
	StatusReady   Status = "ready"
)

// State is exactly one of Loading, Failed(err) or Ready(data). The zero value is Loading.
type State[T any] struct {
	status Status
	err    error
	data   T
}

// Loading is the state of a fetch in flight
func Loading[T any]() State[T] {
	return State[T]{status: StatusLoading}
}

// Failed is the state of a fetch that ended in err
func Failed[T any](err error) State[T] {
	if err == nil {
		err = errors.New("unknown error")
	}
	return State[T]{status: StatusError, err: err}
}

// Ready is the state of a fetch that produced data
func Ready[T any](data T) State[T] {
	return State[T]{status: StatusReady, data: data}
}

// From builds Failed when err is set, Ready otherwise
func From[T any](data T, err error) State[T] {
	if err != nil {
		return Failed[T](err)
	}
	return Ready(data)
}

// Status returns the state's tag
func (s State[T]) Status() Status {
	if s.status == "" {
		return StatusLoading
	}
	return s.status
}

// Err returns the failure of a Failed state, nil otherwise
func (s State[T]) Err() error {
	return s.err
}

// Data returns the data of a Ready state
func (s State[T]) Data() (T, bool) {
	return s.data, s.Status() == StatusReady
}

// Match calls the handler for the state's tag
func (s State[T]) Match(loading func(), failed func(error), ready func(T)) {
	switch s.Status() {
	case StatusError:
		failed(s.err)
	case StatusReady:
		ready(s.data)
	default:
		loading()
	}
}

type envelope[T any] struct {
	Status Status `json:"status"`
	Error  string `json:"error,omitempty"`
	Data   *T     `json:"data,omitempty"`
}

// MarshalJSON renders {"status": ..., "error"?: ..., "data"?: ...}
func (s State[T]) MarshalJSON() ([]byte, error) {
	env := envelope[T]{Status: s.Status()}
	switch env.Status {
	case StatusError:
		env.Error = s.err.Error()
	case StatusReady:
		data := s.data
		env.Data = &data
	}
	return json.Marshal(env)
}

// UnmarshalJSON decodes the envelope written by MarshalJSON
func (s *State[T]) UnmarshalJSON(b []byte) error {
	var env envelope[T]
	if err := json.Unmarshal(b, &env); err != nil {
		return err
	}
	switch env.Status {
	case StatusLoading, "":
		*s = Loading[T]()
	case StatusError:
		*s = Failed[T](errors.New(env.Error))
	case StatusReady:
		var data T
		if env.Data != nil {
			data = *env.Data
		}
		*s = Ready(data)
	default:
		return fmt.Errorf("unknown view status %q", env.Status)
	}
	return nil
}
