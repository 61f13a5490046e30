//go:build tools

// Package tools pins build-time CLI dependencies so go.mod tracks them
package tools

import (
	_ "github.com/swaggo/swag/v2/cmd/swag"
)
