// Foodgram - Recipe Sharing Backend
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/foodgram

package authz

import (
	_ "embed"
	"fmt"
	"strings"
	"time"

	"github.com/casbin/casbin/v2"
	"github.com/casbin/casbin/v2/model"

	"github.com/tomtom215/foodgram/internal/cache"
	"github.com/tomtom215/foodgram/internal/models"
)

//go:embed model.conf
var embeddedModel string

//go:embed policy.csv
var embeddedPolicy string

// Roles
const (
	RoleAnonymous = "anonymous"
	RoleUser      = "user"
	RoleStaff     = "staff"
)

// Objects
const (
	ObjRecipe       = "recipe"
	ObjRecipeList   = "recipe_list"
	ObjShoppingList = "shopping_list"
	ObjTag          = "tag"
	ObjIngredient   = "ingredient"
	ObjUser         = "user"
	ObjSubscription = "subscription"
	ObjAccount      = "account"
	ObjToken        = "token"
)

// Actions
const (
	ActRead      = "read"
	ActCreate    = "create"
	ActWrite     = "write"
	ActDelete    = "delete"
	ActUpdateOwn = "update_own"
	ActDeleteOwn = "delete_own"
	ActDeleteAny = "delete_any"
)

// EnforcerConfig holds configuration for the Casbin enforcer.
type EnforcerConfig struct {
	// CacheEnabled enables enforcement decision caching.
	CacheEnabled bool

	// CacheTTL is how long to cache decisions.
	CacheTTL time.Duration
}

// DefaultEnforcerConfig returns default configuration.
func DefaultEnforcerConfig() *EnforcerConfig {
	return &EnforcerConfig{
		CacheEnabled: true,
		CacheTTL:     5 * time.Minute,
	}
}

// Enforcer answers role questions against the embedded RBAC policy.
// Ownership is not part of the policy: callers pass the own/any variant of
// an action after comparing ids.
type Enforcer struct {
	enforcer *casbin.SyncedEnforcer
	cache    *cache.Cache
}

// NewEnforcer creates an enforcer from the embedded model and policy.
func NewEnforcer(cfg *EnforcerConfig) (*Enforcer, error) {
	if cfg == nil {
		cfg = DefaultEnforcerConfig()
	}

	m, err := model.NewModelFromString(embeddedModel)
	if err != nil {
		return nil, fmt.Errorf("failed to load casbin model: %w", err)
	}
	enforcer, err := casbin.NewSyncedEnforcer(m)
	if err != nil {
		return nil, fmt.Errorf("failed to create casbin enforcer: %w", err)
	}
	if err := loadEmbeddedPolicy(enforcer, embeddedPolicy); err != nil {
		return nil, err
	}

	e := &Enforcer{enforcer: enforcer}
	if cfg.CacheEnabled {
		ttl := cfg.CacheTTL
		if ttl <= 0 {
			ttl = 5 * time.Minute
		}
		e.cache = cache.New("authz", ttl)
	}
	return e, nil
}

// loadEmbeddedPolicy parses and loads the embedded policy CSV.
func loadEmbeddedPolicy(enforcer *casbin.SyncedEnforcer, policy string) error {
	for _, line := range strings.Split(policy, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		parts := strings.Split(line, ",")
		for i := range parts {
			parts[i] = strings.TrimSpace(parts[i])
		}

		switch rule := parts[1:]; parts[0] {
		case "p":
			if len(rule) < 3 {
				return fmt.Errorf("malformed policy line %q", line)
			}
			if _, err := enforcer.AddPolicy(rule[0], rule[1], rule[2]); err != nil {
				return fmt.Errorf("failed to add policy %v: %w", rule, err)
			}
		case "g":
			if len(rule) < 2 {
				return fmt.Errorf("malformed grouping line %q", line)
			}
			if _, err := enforcer.AddGroupingPolicy(rule[0], rule[1]); err != nil {
				return fmt.Errorf("failed to add grouping policy %v: %w", rule, err)
			}
		}
	}
	return nil
}

// RoleOf maps a caller to its policy role; nil is anonymous.
func RoleOf(u *models.User) string {
	switch {
	case u == nil:
		return RoleAnonymous
	case u.IsStaff:
		return RoleStaff
	default:
		return RoleUser
	}
}

// Enforce checks if the role can perform the action on the object.
func (e *Enforcer) Enforce(role, object, action string) (bool, error) {
	if e.cache != nil {
		if v, ok := e.cache.Get(decisionKey(role, object, action)); ok {
			allowed := v.(bool)
			recordDecision(role, object, action, allowed)
			return allowed, nil
		}
	}

	allowed, err := e.enforcer.Enforce(role, object, action)
	if err != nil {
		return false, fmt.Errorf("enforcement failed: %w", err)
	}

	if e.cache != nil {
		e.cache.Set(decisionKey(role, object, action), allowed)
	}
	recordDecision(role, object, action, allowed)
	return allowed, nil
}

// Can is Enforce for a caller, treating enforcement errors as a denial.
func (e *Enforcer) Can(u *models.User, object, action string) bool {
	allowed, err := e.Enforce(RoleOf(u), object, action)
	return err == nil && allowed
}

// DecisionCache returns the decision cache so its sweeper can be
// supervised, or nil when caching is disabled.
func (e *Enforcer) DecisionCache() *cache.Cache {
	return e.cache
}

func decisionKey(role, object, action string) string {
	return role + ":" + object + ":" + action
}
