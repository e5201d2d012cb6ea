// Copyright (c) 2025 Lazycat Apps
// Licensed under the MIT License. See LICENSE file in the project root for details.

package sc

import (
	apperrors "github.com/lazycatapps/wasscan/internal/pkg/errors"
	"github.com/lazycatapps/wasscan/internal/pkg/validator"
)

type (
	// ValidationError is returned before any request is sent when an argument is invalid.
	ValidationError = validator.ValidationError
	// APIError is returned when Security Center rejects a request.
	APIError = apperrors.APIError
	// AppError is returned for transport and decoding failures.
	AppError = apperrors.AppError
)
