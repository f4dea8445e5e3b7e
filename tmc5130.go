// Copyright 2025 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package tmc51xx

// Register map of the TMC5130A, per its datasheet (Rev. 1.15 / 2018-JUL-11).
//
// IFCNT and SLAVECONF only matter on the UART interface; they are kept in the
// table so the names resolve, with SLAVECONF marked inaccessible.

var gconf5130Flags = []flagDef{
	{1 << 0, "I_scale_analog"},
	{1 << 1, "internal_Rsense"},
	{GCONFEnPWMMode, "en_pwm_mode"},
	{1 << 3, "enc_commutation"},
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

var ioin5130Flags = []flagDef{
	{1 << 0, "REFL_STEP"},
	{1 << 1, "REFR_DIR"},
	{1 << 2, "ENCB_DCEN_CFG4"},
	{1 << 3, "ENCA_DCIN_CFG5"},
	{1 << 4, "DRV_ENN_CFG6"},
	{1 << 5, "ENC_N_DCO"},
	{1 << 6, "SD_MODE"},
	{1 << 7, "SWCOMP_IN"},
}

var tmc5130Regs = []regDef{
	{name: "GCONF", addr: 0x00, access: AccessReadWrite, kind: kindMixed, flags: gconf5130Flags},
	{name: "GSTAT", addr: 0x01, access: AccessRead, kind: kindMixed, flags: gstatFlags},
	{name: "IFCNT", addr: 0x02, access: AccessRead, kind: kindUnsigned, bits: 8},
	{name: "SLAVECONF", addr: 0x03, access: AccessNone, kind: kindRaw},
	{name: "IOIN", addr: 0x04, access: AccessRead, kind: kindMixed, flags: ioin5130Flags, subs: []subDef{
		{name: "VERSION", lowBit: 24, bits: 8},
	}},
	{name: "X_COMPARE", addr: 0x05, access: AccessReadWrite, kind: kindSigned, bits: 32},

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
	{name: "VACTUAL", addr: 0x22, access: AccessReadWrite, kind: kindSigned, bits: 24},
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

	{name: "CHOPCONF", addr: 0x6C, access: AccessReadWrite, kind: kindRaw},
	{name: "COOLCONF", addr: 0x6D, access: AccessWrite, kind: kindRaw},
	{name: "DCCTRL", addr: 0x6E, access: AccessWrite, kind: kindRaw},
	{name: "DRVSTATUS", addr: 0x6F, access: AccessRead, kind: kindMixed, flags: drvStatusFlags, subs: []subDef{
		{name: "SG_RESULT", lowBit: 0, bits: 10},
		{name: "CS_ACTUAL", lowBit: 16, bits: 5},
	}},
	{name: "PWMCONF", addr: 0x70, access: AccessWrite, kind: kindRaw},
	{name: "PWMSCALE", addr: 0x71, access: AccessRead, kind: kindRaw},
	{name: "ENCM_CTRL", addr: 0x72, access: AccessWrite, kind: kindRaw},
	{name: "LOST_STEPS", addr: 0x73, access: AccessRead, kind: kindRaw},
}
