// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package port

// CircleRegistry combines all reader and writer operations against the Circle admin API
type CircleRegistry interface {
	CircleReader
	CircleWriter
}
