package constants

// Jerarquia is the ordinal rank of a person. Values are persisted as-is and
// must never be renumbered.
type Jerarquia int16

const (
	JerarquiaAgenteCivil         Jerarquia = 0
	JerarquiaMarineroSegundo     Jerarquia = 1
	JerarquiaMarineroPrimero     Jerarquia = 2
	JerarquiaCaboSegundo         Jerarquia = 3
	JerarquiaCaboPrimero         Jerarquia = 4
	JerarquiaCaboPrincipal       Jerarquia = 5
	JerarquiaSuboficialSegundo   Jerarquia = 6
	JerarquiaSuboficialPrimero   Jerarquia = 7
	JerarquiaSuboficialPrincipal Jerarquia = 8
	JerarquiaSuboficialMayor     Jerarquia = 9
	JerarquiaGuardiamarina       Jerarquia = 10
	JerarquiaTenienteDeCorbeta   Jerarquia = 11
	JerarquiaTenienteDeFragata   Jerarquia = 12
	JerarquiaTenienteDeNavio     Jerarquia = 13
	JerarquiaCapitanDeCorbeta    Jerarquia = 14
	JerarquiaCapitanDeFragata    Jerarquia = 15
	JerarquiaCapitanDeNavio      Jerarquia = 16
	JerarquiaComodoroDeMarina    Jerarquia = 17
	JerarquiaContraalmirante     Jerarquia = 18
	JerarquiaVicealmirante       Jerarquia = 19
	JerarquiaAlmirante           Jerarquia = 20
)

var JerarquiaNames = map[Jerarquia]string{
	JerarquiaAgenteCivil:         "AgenteCivil",
	JerarquiaMarineroSegundo:     "MarineroSegundo",
	JerarquiaMarineroPrimero:     "MarineroPrimero",
	JerarquiaCaboSegundo:         "CaboSegundo",
	JerarquiaCaboPrimero:         "CaboPrimero",
	JerarquiaCaboPrincipal:       "CaboPrincipal",
	JerarquiaSuboficialSegundo:   "SuboficialSegundo",
	JerarquiaSuboficialPrimero:   "SuboficialPrimero",
	JerarquiaSuboficialPrincipal: "SuboficialPrincipal",
	JerarquiaSuboficialMayor:     "SuboficialMayor",
	JerarquiaGuardiamarina:       "Guardiamarina",
	JerarquiaTenienteDeCorbeta:   "TenienteDeCorbeta",
	JerarquiaTenienteDeFragata:   "TenienteDeFragata",
	JerarquiaTenienteDeNavio:     "TenienteDeNavio",
	JerarquiaCapitanDeCorbeta:    "CapitánDeCorbeta",
	JerarquiaCapitanDeFragata:    "CapitánDeFragata",
	JerarquiaCapitanDeNavio:      "CapitánDeNavio",
	JerarquiaComodoroDeMarina:    "ComodoroDeMarina",
	JerarquiaContraalmirante:     "Contraalmirante",
	JerarquiaVicealmirante:       "Vicealmirante",
	JerarquiaAlmirante:           "Almirante",
}

func (j Jerarquia) Valid() bool {
	_, ok := JerarquiaNames[j]
	return ok
}

func (j Jerarquia) String() string {
	if name, ok := JerarquiaNames[j]; ok {
		return name
	}
	return "Desconocida"
}
