// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package constants

const (
	// KVBucketNameBridgeState is the name of the KV bucket for the bridge state snapshot.
	KVBucketNameBridgeState = "glueup-circle-bridge-state"

	// KVStateSnapshotKey is the key under which the full state snapshot is stored.
	KVStateSnapshotKey = "snapshot"

	// DefaultStateFilePath is the default location of the file-backed state store.
	DefaultStateFilePath = ".cache/known_members.json"

	// DefaultMappingFilePath is the default location of the mapping YAML file.
	DefaultMappingFilePath = "config/mapping.yaml"
)
