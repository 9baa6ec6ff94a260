//go:build rp2040 || rp2350

package main

import (
	"context"
	"time"
)

const bootDelay = 2 * time.Second

func startDemo(context.Context) {}
