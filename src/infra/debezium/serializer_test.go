package debezium_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"movieapi/src/infra/debezium"
)

var _ = Describe("CDCSerializer", func() {
	var serializer *debezium.CDCSerializer

	BeforeEach(func() {
		serializer = &debezium.CDCSerializer{IncludeTables: []string{"directors", "movies_p*"}, SkipSnapshots: true}
	})

	Context("ParseCDCEvent", func() {
		It("parses a bare payload", func() {
			event, err := serializer.ParseCDCEvent([]byte(`{
				"before": null,
				"after": {"id": "d-1", "name": "Nolan", "movie_ids": ["m1"]},
				"source": {"connector": "postgresql", "table": "directors", "snapshot": "false"},
				"op": "c",
				"ts_ms": 1700000000000
			}`))

			Expect(err).NotTo(HaveOccurred())
			Expect(event.Operation).To(Equal("c"))
			Expect(event.Source.Table).To(Equal("directors"))
			Expect(idOf(event)).To(Equal("d-1"))
		})

		It("unwraps the JSON converter envelope", func() {
			event, err := serializer.ParseCDCEvent([]byte(`{
				"schema": {"type": "struct"},
				"payload": {
					"before": {"id": "d-2", "name": "Nolan"},
					"after": null,
					"source": {"table": "directors"},
					"op": "d"
				}
			}`))

			Expect(err).NotTo(HaveOccurred())
			Expect(idOf(event)).To(Equal("d-2"))
		})

		DescribeTable("rejects malformed events",
			func(payload string, message string) {
				_, err := serializer.ParseCDCEvent([]byte(payload))

				Expect(err).To(MatchError(ContainSubstring(message)))
			},
			Entry("tombstone", ``, "tombstone"),
			Entry("not JSON", `{"op":`, "failed to unmarshal"),
			Entry("missing table", `{"op": "c", "after": {"id": "x"}, "source": {}}`, "missing source table"),
			Entry("missing operation", `{"after": {"id": "x"}, "source": {"table": "directors"}}`, "missing operation"),
			Entry("unknown operation", `{"op": "t", "source": {"table": "directors"}}`, "invalid operation"),
			Entry("delete without before", `{"op": "d", "source": {"table": "directors"}}`, "missing 'before'"),
			Entry("update without after", `{"op": "u", "before": {"id": "x"}, "source": {"table": "directors"}}`, "missing 'after'"),
		)
	})

	Context("ShouldProcessEvent", func() {
		It("matches exact names and prefixes", func() {
			Expect(serializer.IsTableMonitored("directors")).To(BeTrue())
			Expect(serializer.IsTableMonitored("movies_p2025")).To(BeTrue())
			Expect(serializer.IsTableMonitored("movies")).To(BeFalse())
		})

		It("skips snapshot reads when configured", func() {
			event := &debezium.CDCEvent{Operation: "r", After: map[string]interface{}{"id": "x"}, Source: debezium.CDCSource{Table: "directors"}}

			Expect(serializer.ShouldProcessEvent(event)).To(BeFalse())

			serializer.SkipSnapshots = false
			Expect(serializer.ShouldProcessEvent(event)).To(BeTrue())
		})
	})
})
