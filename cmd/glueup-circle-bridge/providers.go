// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package main

import (
	"context"
	"log"
	"log/slog"
	"os"
	"sync"

	"github.com/semiautomatix-pf/glueup-circle-bridge/internal/domain/port"
	"github.com/semiautomatix-pf/glueup-circle-bridge/internal/infrastructure/circle"
	"github.com/semiautomatix-pf/glueup-circle-bridge/internal/infrastructure/filestore"
	"github.com/semiautomatix-pf/glueup-circle-bridge/internal/infrastructure/glueup"
	infrastructure "github.com/semiautomatix-pf/glueup-circle-bridge/internal/infrastructure/mock"
	"github.com/semiautomatix-pf/glueup-circle-bridge/internal/infrastructure/nats"
	"github.com/semiautomatix-pf/glueup-circle-bridge/internal/service"
	"github.com/semiautomatix-pf/glueup-circle-bridge/pkg/constants"
)

var (
	natsClient  *nats.NATSClient
	natsStorage port.StateStore

	natsDoOnce sync.Once
)

func natsInit(ctx context.Context) {
	natsDoOnce.Do(func() {
		config := nats.NewConfigFromEnv()

		client, errNewClient := nats.NewClient(ctx, config)
		if errNewClient != nil {
			log.Fatalf("failed to create NATS client: %v", errNewClient)
		}
		natsClient = client
		natsStorage = nats.NewStorage(client)
	})
}

func natsStorageImpl(ctx context.Context) port.StateStore {
	natsInit(ctx)
	return natsStorage
}

// StateStore initializes the state store implementation based on the configured backend
func StateStore(ctx context.Context) port.StateStore {
	backend := os.Getenv(constants.EnvStateBackend)
	if backend == "" {
		backend = constants.StateBackendFile
	}

	switch backend {
	case constants.StateBackendFile:
		path := os.Getenv(constants.EnvStateFilePath)
		if path == "" {
			path = constants.DefaultStateFilePath
		}
		slog.InfoContext(ctx, "initializing file state store", "path", path)
		return filestore.NewStore(path)
	case constants.StateBackendNATS:
		slog.InfoContext(ctx, "initializing NATS state store")
		return natsStorageImpl(ctx)
	default:
		log.Fatalf("unsupported state store backend: %s", backend)
	}
	return nil
}

// GlueUpReader initializes the GlueUp reader implementation based on the configured source
func GlueUpReader(ctx context.Context) port.GlueUpReader {
	cfg := glueup.NewConfigFromEnv()

	if cfg.MockMode {
		slog.InfoContext(ctx, "initializing mock GlueUp reader")
		return infrastructure.NewMockGlueUpReader()
	}

	slog.InfoContext(ctx, "initializing GlueUp API client", "base_url", cfg.BaseURL)
	client, err := glueup.NewClient(cfg)
	if err != nil {
		log.Fatalf("failed to create GlueUp client: %v", err)
	}
	return client
}

// CircleRegistry initializes the Circle registry implementation based on the
// configured source, returning the resolved config alongside it
func CircleRegistry(ctx context.Context) (port.CircleRegistry, circle.Config) {
	cfg := circle.NewConfigFromEnv()

	if cfg.MockMode {
		slog.InfoContext(ctx, "initializing mock Circle registry")
		return infrastructure.NewMockCircleRegistry(), cfg
	}

	slog.InfoContext(ctx, "initializing Circle API client", "base_url", cfg.BaseURL)
	client, err := circle.NewClient(cfg)
	if err != nil {
		log.Fatalf("failed to create Circle client: %v", err)
	}
	return client, cfg
}

// WebhookValidator initializes the HMAC signature validator when a signing
// secret is configured; without one the check is skipped entirely
func WebhookValidator(ctx context.Context) port.WebhookValidator {
	secret := os.Getenv(constants.EnvWebhookSecret)
	if secret == "" {
		slog.InfoContext(ctx, "no webhook signing secret configured, signature validation disabled")
		return nil
	}

	slog.InfoContext(ctx, "initializing webhook signature validator")
	return glueup.NewWebhookValidator(secret)
}

// bridge holds the fully wired service graph behind the HTTP surface.
type bridge struct {
	stateStore  port.StateStore
	circle      port.CircleReader
	coordinator *service.SyncCoordinator
	webhooks    *service.WebhookService
}

func initBridge(ctx context.Context) (*bridge, error) {
	mapping, err := service.LoadMappingConfigFromEnv()
	if err != nil {
		return nil, err
	}

	stateStore := StateStore(ctx)
	glueupReader := GlueUpReader(ctx)
	circleRegistry, circleCfg := CircleRegistry(ctx)

	memberSync := service.NewMemberSyncService(glueupReader, circleRegistry, stateStore, mapping)
	eventSync := service.NewEventSyncService(glueupReader, circleRegistry, stateStore, mapping.Events, circleCfg.AdminEmail)
	cacheValidator := service.NewCacheValidator(circleRegistry, stateStore)
	coordinator := service.NewSyncCoordinator(memberSync, eventSync, cacheValidator)
	webhooks := service.NewWebhookService(coordinator, stateStore, WebhookValidator(ctx))

	return &bridge{
		stateStore:  stateStore,
		circle:      circleRegistry,
		coordinator: coordinator,
		webhooks:    webhooks,
	}, nil
}

// close releases infrastructure connections held by the providers.
func (b *bridge) close() {
	if natsClient != nil {
		if err := natsClient.Close(); err != nil {
			slog.Error("error closing NATS connection", "error", err)
		}
	}
}
