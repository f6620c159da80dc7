package config

import (
	"flag"
	"fmt"
)

// parseCLIFlags parses command-line flags and returns a FlagSource and help flag
func parseCLIFlags() (*FlagSource, bool) {
	flagSource := NewFlagSource()

	// Define CLI flags
	serialPort := flag.String(FlagSerialPort, "", HelpSerialPort)
	serialBaud := flag.Int(FlagSerialBaud, 0, HelpSerialBaud)
	logDir := flag.String(FlagLogDir, "", HelpLogDir)
	sessionMode := flag.String(FlagSessionMode, "", HelpSessionMode)
	bringupTimeoutSeconds := flag.Int(FlagBringupTimeoutSeconds, 0, HelpBringupTimeoutSeconds)
	displayRefreshMs := flag.Int(FlagDisplayRefreshMs, 0, HelpDisplayRefreshMs)
	idlePollMs := flag.Int(FlagIdlePollMs, 0, HelpIdlePollMs)
	dashboard := flag.Bool(FlagDashboard, false, HelpDashboard)
	radioAddress := flag.Int(FlagRadioAddress, -1, HelpRadioAddress)
	radioNetworkID := flag.Int(FlagRadioNetworkID, -1, HelpRadioNetworkID)
	radioBand := flag.Int(FlagRadioBand, 0, HelpRadioBand)
	radioSpreadingFactor := flag.Int(FlagRadioSpreadingFactor, 0, HelpRadioSpreadingFactor)
	radioBandwidth := flag.Int(FlagRadioBandwidth, -1, HelpRadioBandwidth)
	radioCodingRate := flag.Int(FlagRadioCodingRate, 0, HelpRadioCodingRate)
	radioPreamble := flag.Int(FlagRadioPreamble, 0, HelpRadioPreamble)
	txIntervalSeconds := flag.Int(FlagTxIntervalSeconds, 0, HelpTxIntervalSeconds)
	txTargetAddress := flag.Int(FlagTxTargetAddress, -1, HelpTxTargetAddress)
	txEmitTokens := flag.Bool(FlagTxEmitTokens, false, HelpTxEmitTokens)
	help := flag.Bool(FlagHelp, false, HelpShowHelp)

	flag.Parse()

	if *help {
		return flagSource, true
	}

	// Store non-zero/non-empty values in flag source
	if *serialPort != "" {
		flagSource.Set(KeySerialPort, *serialPort)
	}
	if *serialBaud != 0 {
		flagSource.Set(KeySerialBaud, *serialBaud)
	}
	if *logDir != "" {
		flagSource.Set(KeyLogDir, *logDir)
	}
	if *sessionMode != "" {
		flagSource.Set(KeySessionMode, *sessionMode)
	}
	if *bringupTimeoutSeconds != 0 {
		flagSource.Set(KeyBringupTimeoutSeconds, *bringupTimeoutSeconds)
	}
	if *displayRefreshMs != 0 {
		flagSource.Set(KeyDisplayRefreshMs, *displayRefreshMs)
	}
	if *idlePollMs != 0 {
		flagSource.Set(KeyIdlePollMs, *idlePollMs)
	}
	if *dashboard {
		flagSource.Set(KeyDashboard, true)
	}
	if *radioAddress >= 0 {
		flagSource.Set(KeyRadioAddress, *radioAddress)
	}
	if *radioNetworkID >= 0 {
		flagSource.Set(KeyRadioNetworkID, *radioNetworkID)
	}
	if *radioBand != 0 {
		flagSource.Set(KeyRadioBand, *radioBand)
	}
	if *radioSpreadingFactor != 0 {
		flagSource.Set(KeyRadioSpreadingFactor, *radioSpreadingFactor)
	}
	if *radioBandwidth >= 0 {
		flagSource.Set(KeyRadioBandwidth, *radioBandwidth)
	}
	if *radioCodingRate != 0 {
		flagSource.Set(KeyRadioCodingRate, *radioCodingRate)
	}
	if *radioPreamble != 0 {
		flagSource.Set(KeyRadioPreamble, *radioPreamble)
	}
	if *txIntervalSeconds != 0 {
		flagSource.Set(KeyTxIntervalSeconds, *txIntervalSeconds)
	}
	if *txTargetAddress >= 0 {
		flagSource.Set(KeyTxTargetAddress, *txTargetAddress)
	}
	if *txEmitTokens {
		flagSource.Set(KeyTxEmitTokens, true)
	}

	return flagSource, false
}

// printUsage prints the usage message
func printUsage() {
	fmt.Printf("%s - %s\n", AppName, AppDescription)
	fmt.Println()
	fmt.Printf("%s\n", HelpUsage)
	fmt.Printf("  %s\n", UsageFormat)
	fmt.Println()
	fmt.Printf("%s\n", HelpOptions)
	fmt.Printf("  --%s string          %s\n", FlagSerialPort, HelpSerialPort)
	fmt.Printf("  --%s int             %s (default: %d)\n", FlagSerialBaud, HelpSerialBaud, DefaultSerialBaud)
	fmt.Printf("  --%s string              %s (default: %s)\n", FlagLogDir, HelpLogDir, DefaultLogDir)
	fmt.Printf("  --%s string         %s (default: %s)\n", FlagSessionMode, HelpSessionMode, DefaultSessionMode)
	fmt.Printf("  --%s int %s (default: %d)\n", FlagBringupTimeoutSeconds, HelpBringupTimeoutSeconds, DefaultBringupTimeoutSeconds)
	fmt.Printf("  --%s int      %s (default: %d)\n", FlagDisplayRefreshMs, HelpDisplayRefreshMs, DefaultDisplayRefreshMs)
	fmt.Printf("  --%s int            %s (default: %d)\n", FlagIdlePollMs, HelpIdlePollMs, DefaultIdlePollMs)
	fmt.Printf("  --%s                    %s\n", FlagDashboard, HelpDashboard)
	fmt.Printf("  --%s int           %s (default: %d)\n", FlagRadioAddress, HelpRadioAddress, DefaultRadioAddress)
	fmt.Printf("  --%s int        %s (default: %d)\n", FlagRadioNetworkID, HelpRadioNetworkID, DefaultRadioNetworkID)
	fmt.Printf("  --%s int              %s (default: %d)\n", FlagRadioBand, HelpRadioBand, DefaultRadioBand)
	fmt.Printf("  --%s int  %s (default: %d)\n", FlagRadioSpreadingFactor, HelpRadioSpreadingFactor, DefaultRadioSpreadingFactor)
	fmt.Printf("  --%s int         %s (default: %d)\n", FlagRadioBandwidth, HelpRadioBandwidth, DefaultRadioBandwidth)
	fmt.Printf("  --%s int       %s (default: %d)\n", FlagRadioCodingRate, HelpRadioCodingRate, DefaultRadioCodingRate)
	fmt.Printf("  --%s int          %s (default: %d)\n", FlagRadioPreamble, HelpRadioPreamble, DefaultRadioPreamble)
	fmt.Printf("  --%s int     %s (default: %d)\n", FlagTxIntervalSeconds, HelpTxIntervalSeconds, DefaultTxIntervalSeconds)
	fmt.Printf("  --%s int       %s (default: %d)\n", FlagTxTargetAddress, HelpTxTargetAddress, DefaultTxTargetAddress)
	fmt.Printf("  --%s                %s\n", FlagTxEmitTokens, HelpTxEmitTokens)
	fmt.Printf("  --%s                         %s\n", FlagHelp, HelpShowHelp)
	fmt.Println()
	fmt.Printf("%s\n", HelpEnvironmentVars)
	fmt.Printf("  %-32s %s\n", KeySerialPort, HelpSerialPort)
	fmt.Printf("  %-32s %s\n", KeySerialBaud, HelpSerialBaud)
	fmt.Printf("  %-32s %s\n", KeyLogDir, HelpLogDir)
	fmt.Printf("  %-32s %s\n", KeySessionMode, HelpSessionMode)
	fmt.Printf("  %-32s %s\n", KeyBringupTimeoutSeconds, HelpBringupTimeoutSeconds)
	fmt.Printf("  %-32s %s\n", KeyDisplayRefreshMs, HelpDisplayRefreshMs)
	fmt.Printf("  %-32s %s\n", KeyIdlePollMs, HelpIdlePollMs)
	fmt.Printf("  %-32s %s\n", KeyDashboard, HelpDashboard)
	fmt.Printf("  %-32s %s\n", KeyRadioAddress, HelpRadioAddress)
	fmt.Printf("  %-32s %s\n", KeyRadioNetworkID, HelpRadioNetworkID)
	fmt.Printf("  %-32s %s\n", KeyRadioBand, HelpRadioBand)
	fmt.Printf("  %-32s %s\n", KeyRadioSpreadingFactor, HelpRadioSpreadingFactor)
	fmt.Printf("  %-32s %s\n", KeyRadioBandwidth, HelpRadioBandwidth)
	fmt.Printf("  %-32s %s\n", KeyRadioCodingRate, HelpRadioCodingRate)
	fmt.Printf("  %-32s %s\n", KeyRadioPreamble, HelpRadioPreamble)
	fmt.Printf("  %-32s %s\n", KeyTxIntervalSeconds, HelpTxIntervalSeconds)
	fmt.Printf("  %-32s %s\n", KeyTxTargetAddress, HelpTxTargetAddress)
	fmt.Printf("  %-32s %s\n", KeyTxEmitTokens, HelpTxEmitTokens)
	fmt.Println()
	fmt.Printf("%s\n", HelpNote)
}
