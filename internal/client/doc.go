// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package client implements the command-line client of the playground-auth
// API.
//
// Each invocation runs one command against the server through an
// [adapter.ServerAdapter]. The bearer token obtained at login is kept in a
// token file so that later invocations stay authenticated.
package client
