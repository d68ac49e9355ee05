package postgres_test

import (
	"os"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"movieapi/src/infra/postgres"
)

var _ = Describe("ConfigFromEnv", func() {
	variables := []string{
		"DB_HOST", "DB_PORT", "DB_READ_HOST", "DB_READ_PORT",
		"DB_NAME", "DB_USER", "DB_PASSWORD", "DB_MAX_POOL_CONNECTIONS",
		"DB_WRITE_HOST", "DB_WRITE_PORT",
	}

	BeforeEach(func() {
		for _, name := range variables {
			if value, ok := os.LookupEnv(name); ok {
				DeferCleanup(os.Setenv, name, value)
			} else {
				DeferCleanup(os.Unsetenv, name)
			}
			os.Unsetenv(name)
		}

		os.Setenv("DB_NAME", "movies")
		os.Setenv("DB_USER", "movieapi")
		os.Setenv("DB_PASSWORD", "secret")
	})

	It("reads the primary from DB_HOST and reuses it for reads", func() {
		os.Setenv("DB_HOST", "db.internal")

		config := postgres.ConfigFromEnv()

		Expect(config).To(Equal(postgres.Config{
			Host:           "db.internal",
			Port:           "5432",
			ReadHost:       "db.internal",
			ReadPort:       "5432",
			DBName:         "movies",
			User:           "movieapi",
			Password:       "secret",
			MaxConnections: 25,
		}))
	})

	It("takes a separate read replica", func() {
		os.Setenv("DB_HOST", "primary.internal")
		os.Setenv("DB_PORT", "6432")
		os.Setenv("DB_READ_HOST", "replica.internal")
		os.Setenv("DB_MAX_POOL_CONNECTIONS", "5")

		config := postgres.ConfigFromEnv()

		Expect(config.Host).To(Equal("primary.internal"))
		Expect(config.ReadHost).To(Equal("replica.internal"))
		Expect(config.ReadPort).To(Equal("6432"))
		Expect(config.MaxConnections).To(Equal(5))
	})

	It("requires DB_HOST even when DB_WRITE_HOST is set", func() {
		os.Setenv("DB_WRITE_HOST", "db.internal")
		os.Setenv("DB_WRITE_PORT", "6432")

		Expect(func() { postgres.ConfigFromEnv() }).To(Panic())
	})
})
