package constants

// InstallHints lists how to get each platform's toolchain onto the host.
var InstallHints = map[string][]string{
	Android: {
		"Install Android Debug Bridge (ADB)",
		"  - macOS: brew install android-platform-tools",
		"  - Linux: sudo apt install android-tools-adb",
		"  - Windows: Download from https://developer.android.com/studio/releases/platform-tools",
	},
	IOS: {
		"Install libimobiledevice tools",
		"  - macOS: brew install libimobiledevice ideviceinstaller",
		"  - Linux: sudo apt-get install libimobiledevice-utils ideviceinstaller",
	},
}

const AuthorizedUseWarning = "WARNING: This tool is for authorized forensic use only!"
