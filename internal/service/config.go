// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

// Package service implements the reconciliation and sync engines of the
// bridge: membership sync, event sync, webhook processing, and cache
// validation.
package service

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/semiautomatix-pf/glueup-circle-bridge/internal/domain/model"
	"github.com/semiautomatix-pf/glueup-circle-bridge/pkg/constants"
	"github.com/semiautomatix-pf/glueup-circle-bridge/pkg/errors"
)

// MappingConfig is the operator-maintained mapping file: which spaces every
// member gets, which extra spaces each membership plan grants, and how events
// are synced.
type MappingConfig struct {
	// DefaultSpaces are granted to every member regardless of plan
	DefaultSpaces []string `yaml:"default_spaces" json:"default_spaces"`
	// PlansToSpaces grants extra spaces keyed by lowercased plan slug
	PlansToSpaces map[string][]string `yaml:"plans_to_spaces" json:"plans_to_spaces"`
	// Events configures the event sync engine
	Events EventSyncConfig `yaml:"events" json:"events"`
}

// EventSyncConfig configures the event sync engine.
type EventSyncConfig struct {
	// DefaultSpaceID is the space events are created in; required for event sync
	DefaultSpaceID string `yaml:"default_space_id" json:"default_space_id"`
	// SyncSettings toggles the create/update/delete passes and source filters
	SyncSettings EventSyncSettings `yaml:"sync_settings" json:"sync_settings"`
	// FieldOverrides pins fields of the generated event payload
	FieldOverrides model.EventFieldOverrides `yaml:"field_overrides" json:"field_overrides"`
}

// EventSyncSettings toggles the event sync passes. Unset values fall back to
// the documented defaults via the accessor methods.
type EventSyncSettings struct {
	CreateNew      *bool `yaml:"create_new" json:"create_new,omitempty"`
	UpdateExisting *bool `yaml:"update_existing" json:"update_existing,omitempty"`
	DeleteRemoved  *bool `yaml:"delete_removed" json:"delete_removed,omitempty"`
	PublishedOnly  *bool `yaml:"published_only" json:"published_only,omitempty"`
	FutureOnly     *bool `yaml:"future_only" json:"future_only,omitempty"`
}

// CreateNewEnabled reports whether new source events are created (default true).
func (s EventSyncSettings) CreateNewEnabled() bool {
	return s.CreateNew == nil || *s.CreateNew
}

// UpdateExistingEnabled reports whether changed events are updated (default true).
func (s EventSyncSettings) UpdateExistingEnabled() bool {
	return s.UpdateExisting == nil || *s.UpdateExisting
}

// DeleteRemovedEnabled reports whether events removed from the source are
// deleted (default false).
func (s EventSyncSettings) DeleteRemovedEnabled() bool {
	return s.DeleteRemoved != nil && *s.DeleteRemoved
}

// PublishedOnlyEnabled reports whether only published source events are
// fetched (default true).
func (s EventSyncSettings) PublishedOnlyEnabled() bool {
	return s.PublishedOnly == nil || *s.PublishedOnly
}

// FutureOnlyEnabled reports whether only future source events are fetched
// (default true).
func (s EventSyncSettings) FutureOnlyEnabled() bool {
	return s.FutureOnly == nil || *s.FutureOnly
}

// SpacesForPlan returns the extra spaces granted by a plan slug.
func (c *MappingConfig) SpacesForPlan(planSlug string) []string {
	if c.PlansToSpaces == nil {
		return nil
	}
	return c.PlansToSpaces[planSlug]
}

// LoadMappingConfig reads and parses the mapping file at the given path.
func LoadMappingConfig(path string) (*MappingConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.NewValidation(fmt.Sprintf("failed to read mapping file %s", path), err)
	}

	var config MappingConfig
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, errors.NewValidation(fmt.Sprintf("failed to parse mapping file %s", path), err)
	}

	if config.DefaultSpaces == nil {
		config.DefaultSpaces = []string{}
	}
	if config.PlansToSpaces == nil {
		config.PlansToSpaces = map[string][]string{}
	}

	return &config, nil
}

// LoadMappingConfigFromEnv loads the mapping file named by the MAPPING_FILE
// environment variable, falling back to the default location.
func LoadMappingConfigFromEnv() (*MappingConfig, error) {
	path := os.Getenv(constants.EnvMappingFile)
	if path == "" {
		path = constants.DefaultMappingFilePath
	}
	return LoadMappingConfig(path)
}
