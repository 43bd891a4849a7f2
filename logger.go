package main

import (
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func init() {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
}

func LogConnected(connID string, ip string) {
	log.Info().Str("conn-id", connID).Str("ip", ip).Msg("Connected")
}

func LogDisconnected(connID string) {
	log.Info().Str("conn-id", connID).Msg("Disconnected")
}

func LogCreatedRoom(roomCode string, connID string) {
	log.Info().Str("room-code", roomCode).Str("conn-id", connID).Msg("Created room")
}

func LogJoinedRoom(roomCode string, connID string) {
	log.Info().Str("room-code", roomCode).Str("conn-id", connID).Msg("Joined room")
}

func LogLeftRoom(roomCode string, connID string) {
	log.Info().Str("room-code", roomCode).Str("conn-id", connID).Msg("Left room")
}

func LogRemovedRoom(roomCode string) {
	log.Info().Str("room-code", roomCode).Msg("Removing room")
}

func LogBadFrame(connID string, err error) {
	log.Warn().Str("conn-id", connID).Err(err).Msg("Dropping bad frame")
}

func LogSendFailed(connID string, err error) {
	log.Warn().Str("conn-id", connID).Err(err).Msg("Send failed")
}

func LogSendQueueFull(connID string) {
	log.Warn().Str("conn-id", connID).Msg("Send queue full, dropping frame")
}

func LogCatalogFetchFailed(url string, err error) {
	log.Error().Str("url", url).Err(err).Msg("Catalog fetch failed")
}

func LogTemplateRenderFailed(name string, err error) {
	log.Error().Str("template", name).Err(err).Msg("Template render failed")
}

func LogErrorWhileUpgradingHTTP(err error) {
	log.Error().Err(err).Msg("Error while upgrading HTTP")
}

func LogStartedServer(port string) {
	log.Info().Msgf("Starting server on port %v", port)
}
