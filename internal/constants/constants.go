package constants

const KBolzmann float64 = 1.380649e-23
const ElectronCharge = 1.602176634e-19                   // C
const ElectronMass float64 = 9.1093837139e-31            // [kg]
const AtomicMassUnit float64 = 1.66053906892e-27         // [kg]
const FreeSpacePermittivityE0 float64 = 8.8541878188e-12 // [m^-3 kg^{-1} s^4 A^2]
const SpeedOfLight float64 = 2.99792458e8                // [m s^-1]
const Planck float64 = 6.62607015e-34                    // [J s]

// Atomic weights of the species the profile loaders handle.
const (
	HydrogenAtomicWeight  = 1.00794
	DeuteriumAtomicWeight = 2.0141017778
	CarbonAtomicWeight    = 12.0107
)
