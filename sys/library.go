package sys

// Library is the bound vendor function table. Load fills it from the
// shared library; tests may construct one by hand to exercise higher
// layers without hardware.
type Library struct {
	Version func() uint32

	Init     func(memory uint32) Result
	Shutdown func() Result

	Open  func(h *Handle) Result
	Close func(h *Handle) Result

	RescanDevices func(h *Handle, timeout int32) Result
	ResetDevices  func(h *Handle) Result
	EnumDevice    func(h *Handle, devType *WChar, index int32, info *DeviceInfo) Result

	OpenDevice       func(h *Handle, d *Device, devType, serial *WChar) Result
	CloseDevice      func(h *Handle, d *Device) Result
	ConnectDevice    func(d *Device) Result
	DisconnectDevice func(d *Device) Result
	StartDevice      func(d *Device) Result
	StopDevice       func(d *Device) Result
	GetDeviceState   func(d *Device) Result

	ConfigRoot       func(d *Device, c *Config) Result
	ConfigHealth     func(d *Device, c *Config) Result
	ConfigFind       func(d *Device, group, node *Config, name *WChar) Result
	ConfigFirst      func(d *Device, group, node *Config) Result
	ConfigNext       func(d *Device, group, node *Config) Result
	ConfigGetInfo    func(d *Device, c *Config, info *ConfigInfo) Result
	ConfigGetFloat   func(d *Device, c *Config, v *float64) Result
	ConfigGetInteger func(d *Device, c *Config, v *int64) Result
	ConfigGetString  func(d *Device, c *Config, buf *WChar, size *int64) Result
	ConfigSetFloat   func(d *Device, c *Config, v float64) Result
	ConfigSetInteger func(d *Device, c *Config, v int64) Result
	ConfigSetString  func(d *Device, c *Config, v *WChar) Result

	AvailPackets   func(d *Device, channel int32, num *int32) Result
	GetPacket      func(d *Device, channel, index int32, p *Packet) Result
	ConsumePackets func(d *Device, channel, num int32) Result
	SendPacket     func(d *Device, channel int32, p *Packet) Result

	GetMasterStreamTime func(d *Device, stime *float64) Result
}

// register binds every entry point through reg, which receives a pointer
// to the function field and the exported symbol name.
func (l *Library) register(reg func(fptr any, name string)) {
	reg(&l.Version, "AARTSAAPI_Version")

	reg(&l.Init, "AARTSAAPI_Init")
	reg(&l.Shutdown, "AARTSAAPI_Shutdown")

	reg(&l.Open, "AARTSAAPI_Open")
	reg(&l.Close, "AARTSAAPI_Close")

	reg(&l.RescanDevices, "AARTSAAPI_RescanDevices")
	reg(&l.ResetDevices, "AARTSAAPI_ResetDevices")
	reg(&l.EnumDevice, "AARTSAAPI_EnumDevice")

	reg(&l.OpenDevice, "AARTSAAPI_OpenDevice")
	reg(&l.CloseDevice, "AARTSAAPI_CloseDevice")
	reg(&l.ConnectDevice, "AARTSAAPI_ConnectDevice")
	reg(&l.DisconnectDevice, "AARTSAAPI_DisconnectDevice")
	reg(&l.StartDevice, "AARTSAAPI_StartDevice")
	reg(&l.StopDevice, "AARTSAAPI_StopDevice")
	reg(&l.GetDeviceState, "AARTSAAPI_GetDeviceState")

	reg(&l.ConfigRoot, "AARTSAAPI_ConfigRoot")
	reg(&l.ConfigHealth, "AARTSAAPI_ConfigHealth")
	reg(&l.ConfigFind, "AARTSAAPI_ConfigFind")
	reg(&l.ConfigFirst, "AARTSAAPI_ConfigFirst")
	reg(&l.ConfigNext, "AARTSAAPI_ConfigNext")
	reg(&l.ConfigGetInfo, "AARTSAAPI_ConfigGetInfo")
	reg(&l.ConfigGetFloat, "AARTSAAPI_ConfigGetFloat")
	reg(&l.ConfigGetInteger, "AARTSAAPI_ConfigGetInteger")
	reg(&l.ConfigGetString, "AARTSAAPI_ConfigGetString")
	reg(&l.ConfigSetFloat, "AARTSAAPI_ConfigSetFloat")
	reg(&l.ConfigSetInteger, "AARTSAAPI_ConfigSetInteger")
	reg(&l.ConfigSetString, "AARTSAAPI_ConfigSetString")

	reg(&l.AvailPackets, "AARTSAAPI_AvailPackets")
	reg(&l.GetPacket, "AARTSAAPI_GetPacket")
	reg(&l.ConsumePackets, "AARTSAAPI_ConsumePackets")
	reg(&l.SendPacket, "AARTSAAPI_SendPacket")

	reg(&l.GetMasterStreamTime, "AARTSAAPI_GetMasterStreamTime")
}
