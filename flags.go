// Copyright 2025 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package tmc51xx

// Flag bits of the status byte prefixing every SPI response (SHORTSTAT).
const (
	StatusReset           uint32 = 1 << 0
	StatusDriverError     uint32 = 1 << 1
	StatusStallGuard      uint32 = 1 << 2
	StatusStandstill      uint32 = 1 << 3
	StatusVelocityReached uint32 = 1 << 4
	StatusPositionReached uint32 = 1 << 5
	StatusStopL           uint32 = 1 << 6
	StatusStopR           uint32 = 1 << 7
)

// Flag bits of the GSTAT register.
const (
	GStatReset        uint32 = 1 << 0
	GStatDriverError  uint32 = 1 << 1
	GStatUnderVoltage uint32 = 1 << 2
)

// GCONF flag bits shared by both chips. The remaining GCONF bits differ
// between the TMC5130 and TMC5160; see the per-chip flag vocabularies.
const (
	GCONFEnPWMMode uint32 = 1 << 2
	GCONFShaft     uint32 = 1 << 4 // reverses motor rotation
)

// Flag bits of the SWMODE reference switch register.
const (
	SWModeStopLEnable   uint32 = 1 << 0
	SWModeStopREnable   uint32 = 1 << 1
	SWModePolStopL      uint32 = 1 << 2
	SWModePolStopR      uint32 = 1 << 3
	SWModeSwapLR        uint32 = 1 << 4
	SWModeLatchLActive  uint32 = 1 << 5
	SWModeLatchLInact   uint32 = 1 << 6
	SWModeLatchRActive  uint32 = 1 << 7
	SWModeLatchRInact   uint32 = 1 << 8
	SWModeLatchEncoder  uint32 = 1 << 9
	SWModeSGStop        uint32 = 1 << 10
	SWModeSoftStop      uint32 = 1 << 11
)

// Flag bits of the RAMPSTAT register.
const (
	RampStatLimitLeft       uint32 = 1 << 0
	RampStatLimitRight      uint32 = 1 << 1
	RampStatLatchLeft       uint32 = 1 << 2
	RampStatLatchRight      uint32 = 1 << 3
	RampStatStopLeft        uint32 = 1 << 4
	RampStatStopRight       uint32 = 1 << 5
	RampStatStalled         uint32 = 1 << 6
	RampStatEventPosReached uint32 = 1 << 7
	RampStatVMaxReached     uint32 = 1 << 8
	RampStatPosReached      uint32 = 1 << 9
	RampStatSpeedZero       uint32 = 1 << 10
	RampStatZeroTransit     uint32 = 1 << 11
	RampStatReversedDir     uint32 = 1 << 12
	RampStatSGActive        uint32 = 1 << 13
)

// Flag bits of the DRVSTATUS register.
const (
	DrvStatFSActive    uint32 = 1 << 15
	DrvStatStallGuard  uint32 = 1 << 24
	DrvStatOvertemp    uint32 = 1 << 25
	DrvStatOvertempPre uint32 = 1 << 26
	DrvStatShortA      uint32 = 1 << 27
	DrvStatShortB      uint32 = 1 << 28
	DrvStatOpenA       uint32 = 1 << 29
	DrvStatOpenB       uint32 = 1 << 30
	DrvStatStandstill  uint32 = 1 << 31
)

// RampMode selects the chip's motion controller mode (RAMPMODE register).
type RampMode uint8

const (
	RampModePosition    RampMode = 0
	RampModeVelocityPos RampMode = 1
	RampModeVelocityNeg RampMode = 2
	RampModeHold        RampMode = 3
)

var statusFlags = []flagDef{
	{StatusReset, "reset"},
	{StatusDriverError, "driver_error"},
	{StatusStallGuard, "stallguard"},
	{StatusStandstill, "standstill"},
	{StatusVelocityReached, "velocity_reached"},
	{StatusPositionReached, "position_reached"},
	{StatusStopL, "status_stop_l"},
	{StatusStopR, "status_stop_r"},
}

var gstatFlags = []flagDef{
	{GStatReset, "reset"},
	{GStatDriverError, "drv_err"},
	{GStatUnderVoltage, "uv_cp"},
}

var swModeFlags = []flagDef{
	{SWModeStopLEnable, "stop_l_enable"},
	{SWModeStopREnable, "stop_r_enable"},
	{SWModePolStopL, "pol_stop_l"},
	{SWModePolStopR, "pol_stop_r"},
	{SWModeSwapLR, "swap_lr"},
	{SWModeLatchLActive, "latch_l_active"},
	{SWModeLatchLInact, "latch_l_inactive"},
	{SWModeLatchRActive, "latch_r_active"},
	{SWModeLatchRInact, "latch_r_inactive"},
	{SWModeLatchEncoder, "en_latch_encoder"},
	{SWModeSGStop, "sg_stop"},
	{SWModeSoftStop, "en_softstop"},
}

var rampStatFlags = []flagDef{
	{RampStatLimitLeft, "limit_left"},
	{RampStatLimitRight, "limit_right"},
	{RampStatLatchLeft, "latch_left"},
	{RampStatLatchRight, "latch_right"},
	{RampStatStopLeft, "stop_left"},
	{RampStatStopRight, "stop_right"},
	{RampStatStalled, "stalled"},
	{RampStatEventPosReached, "pos_reached_event"},
	{RampStatVMaxReached, "vmax_reached"},
	{RampStatPosReached, "pos_reached"},
	{RampStatSpeedZero, "speed_zero"},
	{RampStatZeroTransit, "zero_transit_wait"},
	{RampStatReversedDir, "reversed_dir"},
	{RampStatSGActive, "stall_guard_active"},
}

var drvStatusFlags = []flagDef{
	{DrvStatFSActive, "fsactive"},
	{DrvStatStallGuard, "stallguard"},
	{DrvStatOvertemp, "ot"},
	{DrvStatOvertempPre, "otpw"},
	{DrvStatShortA, "s2ga"},
	{DrvStatShortB, "s2gb"},
	{DrvStatOpenA, "ola"},
	{DrvStatOpenB, "olb"},
	{DrvStatStandstill, "stst"},
}

var rampModeEnum = []enumDef{
	{uint32(RampModePosition), "position"},
	{uint32(RampModeVelocityPos), "velocity_fwd"},
	{uint32(RampModeVelocityNeg), "velocity_rev"},
	{uint32(RampModeHold), "hold"},
}
