// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"errors"
	"io/fs"

	"github.com/gridkit/gridkit/internal/catalog"
	"github.com/gridkit/gridkit/internal/dataset"
	"github.com/gridkit/gridkit/internal/datatable"
	"github.com/gridkit/gridkit/internal/issue"
	"github.com/gridkit/gridkit/internal/tui"
)

// issueFor classifies err into an issue catalog entry. An ActionableError
// that names its issue wins over classification by cause. 0 means none.
func issueFor(err error) issue.Id {
	var ae *issue.ActionableError
	if errors.As(err, &ae) && ae.Issue != 0 {
		return ae.Issue
	}
	switch {
	case errors.Is(err, fs.ErrNotExist):
		return issue.DatasetNotFoundId
	case errors.Is(err, dataset.ErrUnknownFormat), errors.Is(err, dataset.ErrFormatRequired):
		return issue.UnknownFormatId
	case errors.Is(err, dataset.ErrNotTabular):
		return issue.NotTabularId
	case errors.Is(err, dataset.ErrUnknownColumn), errors.Is(err, datatable.ErrColumnNotFound):
		return issue.UnknownColumnId
	case errors.Is(err, catalog.ErrUnknownStory):
		return issue.UnknownStoryId
	default:
		return 0
	}
}

// cancelledOr maps a dismissed interactive view to ExitCancelled.
func cancelledOr(err error) error {
	if errors.Is(err, tui.ErrCancelled) {
		return &ExitError{Code: ExitCancelled}
	}
	return err
}

// usageError marks err as caused by invalid flags or arguments.
func usageError(err error) error {
	return &ExitError{Code: ExitUsage, Err: err}
}
