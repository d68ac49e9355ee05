package env_test

import (
	"os"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"movieapi/src/helper/env"
)

var _ = Describe("env", func() {
	const name = "MOVIEAPI_ENV_TEST"

	AfterEach(func() {
		os.Unsetenv(name)
	})

	Context("GetString", func() {
		It("falls back to the default when unset", func() {
			Expect(env.GetString(name, "fallback")).To(Equal("fallback"))
		})

		It("returns the value when set", func() {
			os.Setenv(name, "value")
			Expect(env.GetString(name, "fallback")).To(Equal("value"))
		})
	})

	Context("MustGetString", func() {
		It("panics when unset", func() {
			Expect(func() { env.MustGetString(name) }).To(Panic())
		})
	})

	Context("GetStringSlice", func() {
		It("splits and trims, dropping empty items", func() {
			os.Setenv(name, "a:1, b:2,,")
			Expect(env.GetStringSlice(name)).To(Equal([]string{"a:1", "b:2"}))
		})

		It("returns nil when unset", func() {
			Expect(env.GetStringSlice(name)).To(BeNil())
		})
	})

	Context("GetInt", func() {
		It("falls back to the default on garbage", func() {
			os.Setenv(name, "abc")
			Expect(env.GetInt(name, 25)).To(Equal(25))
		})
	})

	Context("GetBool", func() {
		It("parses booleans", func() {
			os.Setenv(name, "true")
			Expect(env.GetBool(name, false)).To(BeTrue())
		})
	})

	Context("GetDuration", func() {
		It("reads a bare integer as seconds", func() {
			os.Setenv(name, "300")
			Expect(env.GetDuration(name, time.Second)).To(Equal(300 * time.Second))
		})

		It("reads a Go duration", func() {
			os.Setenv(name, "1m30s")
			Expect(env.GetDuration(name, time.Second)).To(Equal(90 * time.Second))
		})

		It("falls back to the default when unset", func() {
			Expect(env.GetDuration(name, 5*time.Second)).To(Equal(5 * time.Second))
		})
	})
})
