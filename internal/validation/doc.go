// Foodgram - Recipe Sharing Backend
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/foodgram

// Package validation provides struct validation using go-playground/validator v10.
//
// A thread-safe singleton validator carries the custom tags used by the API
// request payloads:
//
//   - hexcolor6: tag colors, #RGB to #RRGGBB
//   - username: letters, digits and @ . + - _
//   - notme: rejects the reserved username "me"
//
// Field names in messages come from json tags, and nested slice elements are
// reported by path, e.g. "ingredients[0].amount". Errors convert to the
// VALIDATION_ERROR envelope with ToAPIError:
//
//	type TagRequest struct {
//	    Name  string `json:"name" validate:"required,max=200"`
//	    Color string `json:"color" validate:"omitempty,hexcolor6"`
//	}
//
//	if verr := validation.ValidateStruct(&req); verr != nil {
//	    respondAPIError(w, http.StatusBadRequest, verr.ToAPIError())
//	    return
//	}
package validation
