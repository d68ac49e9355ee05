package kafka

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/IBM/sarama"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

type fakeSession struct {
	sarama.ConsumerGroupSession

	ctx    context.Context
	mu     sync.Mutex
	marked []int64
}

func (s *fakeSession) Context() context.Context { return s.ctx }

func (s *fakeSession) MarkMessage(msg *sarama.ConsumerMessage, _ string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.marked = append(s.marked, msg.Offset)
}

func (s *fakeSession) markedOffsets() []int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]int64(nil), s.marked...)
}

type fakeClaim struct {
	sarama.ConsumerGroupClaim

	messages chan *sarama.ConsumerMessage
}

func (c *fakeClaim) Messages() <-chan *sarama.ConsumerMessage { return c.messages }

var _ = Describe("consumerGroupHandler", func() {
	var (
		ctx     context.Context
		cancel  context.CancelFunc
		session *fakeSession
		claim   *fakeClaim
		batches [][]Message
		mu      sync.Mutex
		fails   int
		handler *consumerGroupHandler
	)

	message := func(offset int64, key string) *sarama.ConsumerMessage {
		return &sarama.ConsumerMessage{
			Key:     []byte(key),
			Value:   []byte(`{}`),
			Offset:  offset,
			Headers: []*sarama.RecordHeader{{Key: []byte("event_type"), Value: []byte("c")}},
		}
	}

	BeforeEach(func() {
		ctx, cancel = context.WithCancel(context.Background())
		session = &fakeSession{ctx: ctx}
		claim = &fakeClaim{messages: make(chan *sarama.ConsumerMessage, 10)}
		batches = nil
		fails = 0

		handler = &consumerGroupHandler{
			batchSize:    2,
			batchTimeout: 50 * time.Millisecond,
			retryBackoff: 5 * time.Millisecond,
			handler: func(ctx context.Context, messages []Message) error {
				mu.Lock()
				defer mu.Unlock()
				batches = append(batches, append([]Message(nil), messages...))
				if fails != 0 {
					fails--
					return errors.New("handler failed")
				}
				return nil
			},
		}
	})

	handledOffsets := func() [][]int64 {
		mu.Lock()
		defer mu.Unlock()

		offsets := make([][]int64, 0, len(batches))
		for _, batch := range batches {
			batchOffsets := make([]int64, 0, len(batch))
			for _, msg := range batch {
				batchOffsets = append(batchOffsets, msg.internal.Offset)
			}
			offsets = append(offsets, batchOffsets)
		}
		return offsets
	}

	AfterEach(func() {
		cancel()
	})

	It("hands full batches to the handler and marks them", func() {
		// ARRANGE
		for offset := int64(1); offset <= 4; offset++ {
			claim.messages <- message(offset, "director-1")
		}
		close(claim.messages)

		// ACT
		Expect(handler.ConsumeClaim(session, claim)).To(Succeed())

		// ASSERT
		Expect(batches).To(HaveLen(2))
		Expect(batches[0][0].Key).To(Equal("director-1"))
		Expect(batches[0][0].Headers).To(HaveKeyWithValue("event_type", "c"))
		Expect(session.markedOffsets()).To(Equal([]int64{1, 2, 3, 4}))
	})

	It("flushes a partial batch when the timer fires", func() {
		claim.messages <- message(7, "director-7")

		done := make(chan error, 1)
		go func() { done <- handler.ConsumeClaim(session, claim) }()

		Eventually(session.markedOffsets).Should(Equal([]int64{7}))

		cancel()
		Eventually(done).Should(Receive(BeNil()))
	})

	It("retries a failed batch before reading the next one", func() {
		// ARRANGE
		fails = 1
		for offset := int64(1); offset <= 4; offset++ {
			claim.messages <- message(offset, "director-1")
		}
		close(claim.messages)

		// ACT
		Expect(handler.ConsumeClaim(session, claim)).To(Succeed())

		// ASSERT
		Expect(handledOffsets()).To(Equal([][]int64{{1, 2}, {1, 2}, {3, 4}}))
		Expect(session.markedOffsets()).To(Equal([]int64{1, 2, 3, 4}))
	})

	It("leaves a failing batch unmarked when the session ends", func() {
		fails = -1
		for offset := int64(1); offset <= 4; offset++ {
			claim.messages <- message(offset, "director-1")
		}

		done := make(chan error, 1)
		go func() { done <- handler.ConsumeClaim(session, claim) }()

		Eventually(func() int { return len(handledOffsets()) }).Should(BeNumerically(">=", 2))

		cancel()
		Eventually(done).Should(Receive(BeNil()))

		Expect(handledOffsets()).To(HaveEach(Equal([]int64{1, 2})))
		Expect(session.markedOffsets()).To(BeEmpty())
	})
})
