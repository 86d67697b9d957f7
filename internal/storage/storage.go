package storage

import (
	"context"
	"errors"

	"tokenlistConverter/internal/model"
)

// Storage defines a sink for converted token lists.
type Storage interface {
	PutTokenList(ctx context.Context, source string, list model.TargetList) error
}

// Multi fans a list out to every sink in order, joining their errors.
type Multi []Storage

func (m Multi) PutTokenList(ctx context.Context, source string, list model.TargetList) error {
	var errs []error
	for _, sink := range m {
		if sink == nil {
			continue
		}
		if err := sink.PutTokenList(ctx, source, list); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
