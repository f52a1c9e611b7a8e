/*
DESCRIPTION
  device.go provides MultiError, an aggregate error type collecting
  multiple independent validation failures.

AUTHORS
  Saxon A. Nelson-Milton <saxon@ausocean.org>

LICENSE
  Copyright (C) 2024 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

// Package device provides MultiError, the aggregate validation-error
// type returned by config.Config.Validate.
package device

import "fmt"

// MultiError aggregates multiple independent validation errors, e.g. the
// several defaulting decisions made by config.Config.Validate in one
// call.
type MultiError []error

// Error implements the error interface.
func (me MultiError) Error() string {
	if len(me) == 0 {
		panic("device: invalid use of MultiError")
	}
	return fmt.Sprintf("%v", []error(me))
}
