// Copyright 2025 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package tmc51xx

// Register map of the TMC5160A, per its datasheet (Rev. 1.13 / 2019-NOV-19).
//
// It differs from the TMC5130 in the GCONF and IOIN bit layouts, a read-only
// VACTUAL, and a handful of extra registers (OTP access, short detection and
// gate driver tuning, GLOBALSCALER, PWM autotune readback).

var gconf5160Flags = []flagDef{
	{1 << 0, "recalibrate"},
	{1 << 1, "fast_stand_still"},
	{GCONFEnPWMMode, "en_pwm_mode"},
	{1 << 3, "multistep_filt"},
	{GCONFShaft, "shaft"},
	{1 << 5, "diag0_error"},
	{1 << 6, "diag0_otpw"},
	{1 << 7, "diag0_stall"},
	{1 << 8, "diag1_stall"},
	{1 << 9, "diag1_index"},
	{1 << 10, "diag1_onstate"},
	{1 << 11, "diag1_steps_skipped"},
	{1 << 12, "diag0_int_pushpull"},
	{1 << 13, "diag1_poscomp_pushpull"},
	{1 << 14, "small_hysteresis"},
	{1 << 15, "stop_enable"},
	{1 << 16, "direct_mode"},
	{1 << 17, "test_mode"},
}

// otSelectEnum names the DRV_CONF/OTSELECT overtemperature thresholds.
var otSelectEnum = []enumDef{
	{0, "150C"},
	{1, "143C"},
	{2, "136C"},
	{3, "120C"},
}

var ioin5160Flags = []flagDef{
	{1 << 0, "REFL_STEP"},
	{1 << 1, "REFR_DIR"},
	{1 << 2, "ENCB_DCEN_CFG4"},
	{1 << 3, "ENCA_DCIN_CFG5"},
	{1 << 4, "DRV_ENN"},
	{1 << 5, "ENC_N_DCO_CFG6"},
	{1 << 6, "SD_MODE"},
	{1 << 7, "SWCOMP_IN"},
}

var tmc5160Regs = []regDef{
	{name: "GCONF", addr: 0x00, access: AccessReadWrite, kind: kindMixed, flags: gconf5160Flags},
	{name: "GSTAT", addr: 0x01, access: AccessRead, kind: kindMixed, flags: gstatFlags},
	{name: "IFCNT", addr: 0x02, access: AccessRead, kind: kindUnsigned, bits: 8},
	{name: "SLAVECONF", addr: 0x03, access: AccessNone, kind: kindRaw},
	{name: "IOIN", addr: 0x04, access: AccessRead, kind: kindMixed, flags: ioin5160Flags, subs: []subDef{
		{name: "VERSION", lowBit: 24, bits: 8},
	}},
	{name: "X_COMPARE", addr: 0x05, access: AccessReadWrite, kind: kindSigned, bits: 32},
	{name: "OTP_PROG", addr: 0x06, access: AccessWrite, kind: kindRaw},
	{name: "OTP_READ", addr: 0x07, access: AccessRead, kind: kindRaw},
	{name: "FACTORY_CONF", addr: 0x08, access: AccessReadWrite, kind: kindUnsigned, bits: 5},
	{name: "SHORT_CONF", addr: 0x09, access: AccessWrite, kind: kindMixed, subs: []subDef{
		{name: "S2VS_LEVEL", lowBit: 0, bits: 4},
		{name: "S2G_LEVEL", lowBit: 8, bits: 4},
		{name: "SHORTFILTER", lowBit: 16, bits: 2},
		{name: "SHORT_DELAY", lowBit: 18, bits: 1},
	}},
	{name: "DRV_CONF", addr: 0x0A, access: AccessWrite, kind: kindMixed, subs: []subDef{
		{name: "BBMTIME", lowBit: 0, bits: 5},
		{name: "BBMCLKS", lowBit: 8, bits: 4},
		{name: "OTSELECT", lowBit: 16, bits: 2, enum: otSelectEnum},
		{name: "DRVSTRENGTH", lowBit: 18, bits: 2},
		{name: "FILT_ISENSE", lowBit: 20, bits: 2},
	}},
	{name: "GLOBALSCALER", addr: 0x0B, access: AccessWrite, kind: kindUnsigned, bits: 8},
	{name: "OFFSET_READ", addr: 0x0C, access: AccessRead, kind: kindRaw},

	{name: "IHOLD_IRUN", addr: 0x10, access: AccessWrite, kind: kindMixed, subs: []subDef{
		{name: "IHOLD", lowBit: 0, bits: 5},
		{name: "IRUN", lowBit: 8, bits: 5},
		{name: "IHOLDDELAY", lowBit: 16, bits: 4},
	}},
	{name: "TPOWERDOWN", addr: 0x11, access: AccessWrite, kind: kindUnsigned, bits: 8},
	{name: "TSTEP", addr: 0x12, access: AccessRead, kind: kindUnsigned, bits: 20},
	{name: "TPWMTHRS", addr: 0x13, access: AccessWrite, kind: kindUnsigned, bits: 20},
	{name: "TCOOLTHRS", addr: 0x14, access: AccessWrite, kind: kindUnsigned, bits: 20},
	{name: "THIGH", addr: 0x15, access: AccessWrite, kind: kindUnsigned, bits: 20},

	{name: "RAMPMODE", addr: 0x20, access: AccessReadWrite, kind: kindEnum, enum: rampModeEnum},
	{name: "XACTUAL", addr: 0x21, access: AccessReadWrite, kind: kindSigned, bits: 32},
	{name: "VACTUAL", addr: 0x22, access: AccessRead, kind: kindSigned, bits: 24},
	{name: "VSTART", addr: 0x23, access: AccessWrite, kind: kindUnsigned, bits: 18},
	{name: "A1", addr: 0x24, access: AccessWrite, kind: kindUnsigned, bits: 16},
	{name: "V1", addr: 0x25, access: AccessWrite, kind: kindUnsigned, bits: 20},
	{name: "AMAX", addr: 0x26, access: AccessWrite, kind: kindUnsigned, bits: 16},
	{name: "VMAX", addr: 0x27, access: AccessWrite, kind: kindUnsigned, bits: 23, max: 1<<23 - 512},
	{name: "DMAX", addr: 0x28, access: AccessWrite, kind: kindUnsigned, bits: 16},
	{name: "D1", addr: 0x2A, access: AccessWrite, kind: kindUnsigned, bits: 16},
	{name: "VSTOP", addr: 0x2B, access: AccessWrite, kind: kindUnsigned, bits: 18},
	{name: "TZEROWAIT", addr: 0x2C, access: AccessWrite, kind: kindUnsigned, bits: 16},
	{name: "XTARGET", addr: 0x2D, access: AccessReadWrite, kind: kindSigned, bits: 32},

	{name: "VDCMIN", addr: 0x33, access: AccessWrite, kind: kindUnsigned, bits: 23},
	{name: "SWMODE", addr: 0x34, access: AccessReadWrite, kind: kindMixed, flags: swModeFlags},
	{name: "RAMPSTAT", addr: 0x35, access: AccessRead, kind: kindMixed, flags: rampStatFlags},
	{name: "XLATCH", addr: 0x36, access: AccessRead, kind: kindSigned, bits: 32},

	{name: "ENCMODE", addr: 0x38, access: AccessReadWrite, kind: kindRaw},
	{name: "XENC", addr: 0x39, access: AccessReadWrite, kind: kindRaw},
	{name: "ENC_CONST", addr: 0x3A, access: AccessWrite, kind: kindRaw},
	{name: "ENC_STATUS", addr: 0x3B, access: AccessRead, kind: kindRaw},
	{name: "ENC_LATCH", addr: 0x3C, access: AccessRead, kind: kindRaw},
	{name: "ENC_DEVIATION", addr: 0x3D, access: AccessWrite, kind: kindRaw},

	{name: "CHOPCONF", addr: 0x6C, access: AccessReadWrite, kind: kindRaw},
	{name: "COOLCONF", addr: 0x6D, access: AccessWrite, kind: kindRaw},
	{name: "DCCTRL", addr: 0x6E, access: AccessWrite, kind: kindRaw},
	{name: "DRVSTATUS", addr: 0x6F, access: AccessRead, kind: kindMixed, flags: drvStatusFlags, subs: []subDef{
		{name: "SG_RESULT", lowBit: 0, bits: 10},
		{name: "CS_ACTUAL", lowBit: 16, bits: 5},
	}},
	{name: "PWMCONF", addr: 0x70, access: AccessWrite, kind: kindRaw},
	{name: "PWMSCALE", addr: 0x71, access: AccessRead, kind: kindRaw},
	{name: "PWM_AUTO", addr: 0x72, access: AccessRead, kind: kindMixed, subs: []subDef{
		{name: "PWM_OFS_AUTO", lowBit: 0, bits: 8},
		{name: "PWM_GRAD_AUTO", lowBit: 16, bits: 8},
	}},
	{name: "LOST_STEPS", addr: 0x73, access: AccessRead, kind: kindRaw},
}
