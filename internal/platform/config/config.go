package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
)

// Config is centralized process configuration.
// Keep infra values here and pass typed config into builders.
type Config struct {
	ServiceName  string
	HTTPPort     string
	PostgresDSN  string
	KafkaBrokers []string

	// Contract-level values fixed at construction. None of these may change
	// after the process is wired.
	DeployerID             string
	ContractID             string
	AssetRegistryID        string
	AssetID                string
	TotalSupply            uint64
	ParticipationThreshold uint64
	AcceptanceThreshold    uint64
	RegistrationFee        uint64
	MotionFee              uint64
	EscortPayment          uint64
}

func Load() (Config, error) {
	service := os.Getenv("SERVICE_NAME")
	if service == "" {
		service = "fungify"
	}

	port := os.Getenv("HTTP_PORT")
	if port == "" {
		port = "8080"
	}

	var brokers []string
	for _, value := range strings.Split(os.Getenv("KAFKA_BROKERS"), ",") {
		value = strings.TrimSpace(value)
		if value != "" {
			brokers = append(brokers, value)
		}
	}
	if len(brokers) == 0 {
		brokers = []string{"localhost:9092"}
	}

	totalSupply, err := envUint("TOTAL_SUPPLY", 1_000_000)
	if err != nil {
		return Config{}, err
	}
	participation, err := envUint("DAO_PARTICIPATION_THRESHOLD", totalSupply/2)
	if err != nil {
		return Config{}, err
	}
	acceptance, err := envUint("DAO_ACCEPTANCE_THRESHOLD", totalSupply/3)
	if err != nil {
		return Config{}, err
	}
	registrationFee, err := envUint("REGISTRATION_FEE", 1000)
	if err != nil {
		return Config{}, err
	}
	motionFee, err := envUint("MOTION_FEE", 1000)
	if err != nil {
		return Config{}, err
	}
	escort, err := envUint("ESCORT_PAYMENT", 1)
	if err != nil {
		return Config{}, err
	}

	return Config{
		ServiceName:  service,
		HTTPPort:     port,
		PostgresDSN:  os.Getenv("POSTGRES_DSN"),
		KafkaBrokers: brokers,

		DeployerID:             envString("DEPLOYER_ID", "deployer"),
		ContractID:             envString("CONTRACT_ID", service),
		AssetRegistryID:        envString("ASSET_REGISTRY_ID", "asset-registry"),
		AssetID:                envString("ASSET_ID", "asset-1"),
		TotalSupply:            totalSupply,
		ParticipationThreshold: participation,
		AcceptanceThreshold:    acceptance,
		RegistrationFee:        registrationFee,
		MotionFee:              motionFee,
		EscortPayment:          escort,
	}, nil
}

func envString(name string, fallback string) string {
	value := strings.TrimSpace(os.Getenv(name))
	if value == "" {
		return fallback
	}
	return value
}

func envUint(name string, fallback uint64) (uint64, error) {
	raw := strings.TrimSpace(os.Getenv(name))
	if raw == "" {
		return fallback, nil
	}
	value, err := strconv.ParseUint(raw, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("parse %s: %w", name, err)
	}
	return value, nil
}
