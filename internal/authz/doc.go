// Foodgram - Recipe Sharing Backend
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/foodgram

// Package authz provides role-based authorization using Casbin.
//
// The model and policy are embedded. Three roles form a hierarchy:
// staff inherits user, which inherits anonymous. Ownership checks stay in
// the handlers, which ask for update_own/delete_own when the caller authored
// the recipe and delete_any otherwise:
//
//	action := authz.ActDeleteAny
//	if recipe.AuthorID == caller.ID {
//	    action = authz.ActDeleteOwn
//	}
//	if !enforcer.Can(caller, authz.ObjRecipe, action) {
//	    // 403
//	}
package authz
