package memory

import (
	"testing"

	"expensed/internal/store"
	"expensed/internal/store/storetest"
)

func TestConformance(t *testing.T) {
	storetest.Run(t, func(t *testing.T) store.Store {
		return New()
	})
}
