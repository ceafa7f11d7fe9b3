package chime

import (
	"errors"
	"testing"
	"time"
)

// --- Construction ---

func TestNewDefaults(t *testing.T) {
	a, err := New(AppConfig{})
	if err != nil {
		t.Fatal(err)
	}
	if a.ScreenBounds() != Rect(0, 0, 144, 168) {
		t.Errorf("default screen = %v, want 144x168", a.ScreenBounds())
	}
	if a.WindowStack().Len() != 0 {
		t.Error("new app should have an empty stack")
	}
}

func TestNewRejectsBadScreen(t *testing.T) {
	if _, err := New(AppConfig{ScreenSize: Sz(-1, 10)}); !errors.Is(err, ErrInvalidArgument) {
		t.Errorf("bad screen err = %v, want ErrInvalidArgument", err)
	}
}

// --- PostTask ---

func TestPostTaskRunsOnNextTick(t *testing.T) {
	a := newTestApp(t, 16, 16)
	ran := false
	if err := a.PostTask(func() { ran = true }); err != nil {
		t.Fatal(err)
	}
	if ran {
		t.Fatal("task must not run synchronously")
	}
	a.Tick(testEpoch)
	if !ran {
		t.Error("task should run at the start of the next tick")
	}
}

func TestPostTaskQueueFull(t *testing.T) {
	a, err := New(AppConfig{ScreenSize: Sz(16, 16), TaskQueueCap: 2})
	if err != nil {
		t.Fatal(err)
	}
	if err := a.PostTask(func() {}); err != nil {
		t.Fatal(err)
	}
	if err := a.PostTask(func() {}); err != nil {
		t.Fatal(err)
	}
	if err := a.PostTask(func() {}); !errors.Is(err, ErrResourceExhausted) {
		t.Errorf("full queue err = %v, want ErrResourceExhausted", err)
	}

	a.Tick(testEpoch)
	if err := a.PostTask(func() {}); err != nil {
		t.Errorf("queue should drain after a tick, got %v", err)
	}
}

func TestPostTaskNil(t *testing.T) {
	a := newTestApp(t, 16, 16)
	if err := a.PostTask(nil); !errors.Is(err, ErrInvalidArgument) {
		t.Errorf("nil task err = %v, want ErrInvalidArgument", err)
	}
}

func TestTaskPostedByTaskWaitsForNextTick(t *testing.T) {
	a := newTestApp(t, 16, 16)
	var order []string
	a.PostTask(func() {
		order = append(order, "first")
		a.PostTask(func() { order = append(order, "second") })
	})

	a.Tick(testEpoch)
	if len(order) != 1 {
		t.Fatalf("after one tick order = %v, want just [first]", order)
	}
	a.Tick(testEpoch.Add(time.Millisecond))
	if len(order) != 2 || order[1] != "second" {
		t.Errorf("order = %v, want [first second]", order)
	}
}

// --- Timers ---

func TestTimerFiresAtDeadline(t *testing.T) {
	a := newTestApp(t, 16, 16)
	a.Tick(testEpoch)

	fired := 0
	if _, err := a.ScheduleTimer(100*time.Millisecond, func() { fired++ }); err != nil {
		t.Fatal(err)
	}

	a.Tick(testEpoch.Add(50 * time.Millisecond))
	if fired != 0 {
		t.Fatal("timer must not fire early")
	}
	a.Tick(testEpoch.Add(100 * time.Millisecond))
	if fired != 1 {
		t.Fatalf("fired = %d at deadline, want 1", fired)
	}
	a.Tick(testEpoch.Add(time.Second))
	if fired != 1 {
		t.Error("one-shot timer fired again")
	}
}

func TestTimersFireInDeadlineOrder(t *testing.T) {
	a := newTestApp(t, 16, 16)
	a.Tick(testEpoch)

	var order []string
	a.ScheduleTimer(200*time.Millisecond, func() { order = append(order, "late") })
	a.ScheduleTimer(100*time.Millisecond, func() { order = append(order, "early") })

	// Both are overdue on the same tick; they must still fire in order.
	a.Tick(testEpoch.Add(time.Second))
	if len(order) != 2 || order[0] != "early" || order[1] != "late" {
		t.Errorf("order = %v, want [early late]", order)
	}
}

func TestTimerCancel(t *testing.T) {
	a := newTestApp(t, 16, 16)
	a.Tick(testEpoch)

	fired := false
	timer, _ := a.ScheduleTimer(100*time.Millisecond, func() { fired = true })
	timer.Cancel()
	a.Tick(testEpoch.Add(time.Second))
	if fired {
		t.Error("cancelled timer must not fire")
	}
	timer.Cancel() // no-op on a cancelled timer
}

func TestTimerReschedule(t *testing.T) {
	a := newTestApp(t, 16, 16)
	a.Tick(testEpoch)

	fired := 0
	timer, _ := a.ScheduleTimer(100*time.Millisecond, func() { fired++ })

	a.Tick(testEpoch.Add(50 * time.Millisecond))
	if err := timer.Reschedule(100 * time.Millisecond); err != nil {
		t.Fatal(err)
	}
	a.Tick(testEpoch.Add(120 * time.Millisecond))
	if fired != 0 {
		t.Fatal("rescheduled timer fired at the old deadline")
	}
	a.Tick(testEpoch.Add(150 * time.Millisecond))
	if fired != 1 {
		t.Errorf("fired = %d at new deadline, want 1", fired)
	}

	if err := timer.Reschedule(time.Second); !errors.Is(err, ErrNotFound) {
		t.Errorf("reschedule after firing err = %v, want ErrNotFound", err)
	}
}

func TestTimerScheduledByTimerWaitsForNextTick(t *testing.T) {
	a := newTestApp(t, 16, 16)
	a.Tick(testEpoch)

	var fired []string
	a.ScheduleTimer(10*time.Millisecond, func() {
		fired = append(fired, "outer")
		a.ScheduleTimer(0, func() { fired = append(fired, "inner") })
	})

	a.Tick(testEpoch.Add(time.Second))
	if len(fired) != 1 {
		t.Fatalf("fired = %v after one tick, want just [outer]", fired)
	}
	a.Tick(testEpoch.Add(2 * time.Second))
	if len(fired) != 2 || fired[1] != "inner" {
		t.Errorf("fired = %v, want [outer inner]", fired)
	}
}

// --- Input validation ---

func TestPushButtonEventValidation(t *testing.T) {
	a := newTestApp(t, 16, 16)
	if err := a.PushButtonEvent(ButtonID(7), true); !errors.Is(err, ErrInvalidArgument) {
		t.Errorf("bad button err = %v, want ErrInvalidArgument", err)
	}
	if err := a.PushButtonEvent(ButtonSelect, true); err != nil {
		t.Errorf("valid button err = %v", err)
	}
}

// --- Idle cost ---

func TestIdleTickDoesNotAllocate(t *testing.T) {
	a := newTestApp(t, 16, 16)
	pushTestWindow(t, a, GColorBlack)
	a.Tick(testEpoch)

	now := testEpoch.Add(time.Second)
	allocs := testing.AllocsPerRun(100, func() {
		now = now.Add(16 * time.Millisecond)
		a.Tick(now)
	})
	if allocs > 0 {
		t.Errorf("idle tick allocates %.1f objects, want 0", allocs)
	}
}
