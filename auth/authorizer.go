// Copyright (c) 2025 Cel Skeggs.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package auth

import "github.com/celskeggs/hwops/models"

// Authorizer decides who may change the inventory.
type Authorizer struct {
	Oracle        GroupOracle
	OperatorGroup string
}

func NewAuthorizer(oracle GroupOracle, operatorGroup string) *Authorizer {
	return &Authorizer{Oracle: oracle, OperatorGroup: operatorGroup}
}

// IsHardwareOperator reports whether user may add and edit any device
func (a *Authorizer) IsHardwareOperator(user string) bool {
	if user == "" {
		return false
	}
	return a.Oracle.HasAccess(user, a.OperatorGroup)
}

// CanEdit reports whether user may edit device. Operators may edit
// everything; members of the device's owner group may edit that device.
func (a *Authorizer) CanEdit(user string, device *models.Device) bool {
	if user == "" {
		return false
	}
	if a.IsHardwareOperator(user) {
		return true
	}
	return device != nil && a.Oracle.HasAccess(user, device.Owner)
}
