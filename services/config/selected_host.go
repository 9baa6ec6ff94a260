//go:build !(rp2040 || rp2350)

package config

const selectedBoard = "host"
