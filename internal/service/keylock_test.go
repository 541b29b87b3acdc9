package service

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKeyLock_SerializesSameKey(t *testing.T) {
	k := newKeyLock()
	var wg sync.WaitGroup
	counter := 0
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			unlock := k.Lock("a")
			counter++
			unlock()
		}()
	}
	wg.Wait()
	assert.Equal(t, 50, counter)
	assert.Equal(t, 0, k.size(), "unused keys are released")
}

func TestKeyLock_IndependentKeys(t *testing.T) {
	k := newKeyLock()
	unlockA := k.Lock("a")
	done := make(chan struct{})
	go func() {
		unlockB := k.Lock("b")
		unlockB()
		close(done)
	}()
	<-done
	assert.Equal(t, 1, k.size())
	unlockA()
	assert.Equal(t, 0, k.size())
}
