// ReelRank - Hybrid Movie Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelrank

//go:build integration

package testinfra

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/testcontainers/testcontainers-go"
	tcexec "github.com/testcontainers/testcontainers-go/exec"
	"github.com/testcontainers/testcontainers-go/wait"
)

const (
	// DefaultMongoImage is the MongoDB image used for store tests
	DefaultMongoImage = "mongo:7"

	mongoPort = "27017/tcp"
)

// MongoContainer is a single-node MongoDB replica set. Transactions need a
// replica set, so a standalone server is not enough.
type MongoContainer struct {
	testcontainers.Container

	// URI connects directly to the single member
	URI string
}

// NewMongoContainer starts MongoDB and initiates a one member replica set.
func NewMongoContainer(ctx context.Context, opts ...containerOption) (*MongoContainer, error) {
	cfg := applyOptions(DefaultMongoImage, opts)

	req := testcontainers.ContainerRequest{
		Image:        cfg.image,
		ExposedPorts: []string{mongoPort},
		Cmd:          []string{"--replSet", "rs0", "--bind_ip_all"},
		WaitingFor: wait.ForAll(
			wait.ForListeningPort(mongoPort),
			wait.ForLog("Waiting for connections"),
		).WithStartupTimeout(cfg.startTimeout),
	}

	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	if err != nil {
		return nil, fmt.Errorf("create mongo container: %w", err)
	}

	initiate := `rs.initiate({_id: "rs0", members: [{_id: 0, host: "localhost:27017"}]})`
	if _, err := mongosh(ctx, container, initiate); err != nil {
		container.Terminate(ctx) //nolint:errcheck
		return nil, fmt.Errorf("initiate replica set: %w", err)
	}

	err = WaitForReady(ctx, func() bool {
		out, err := mongosh(ctx, container, "db.hello().isWritablePrimary")
		return err == nil && strings.Contains(out, "true")
	}, cfg.startTimeout)
	if err != nil {
		container.Terminate(ctx) //nolint:errcheck
		return nil, fmt.Errorf("wait for primary: %w", err)
	}

	endpoint, err := container.PortEndpoint(ctx, mongoPort, "")
	if err != nil {
		container.Terminate(ctx) //nolint:errcheck
		return nil, fmt.Errorf("get mongo endpoint: %w", err)
	}

	return &MongoContainer{
		Container: container,
		URI:       "mongodb://" + endpoint + "/?directConnection=true",
	}, nil
}

func mongosh(ctx context.Context, container testcontainers.Container, script string) (string, error) {
	execCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	code, reader, err := container.Exec(execCtx, []string{"mongosh", "--quiet", "--eval", script}, tcexec.Multiplexed())
	if err != nil {
		return "", err
	}
	out, err := io.ReadAll(reader)
	if err != nil {
		return "", err
	}
	if code != 0 {
		return string(out), fmt.Errorf("mongosh exited with %d: %s", code, out)
	}
	return string(out), nil
}
